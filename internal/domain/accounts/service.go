package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-records/internal/platform/logger"
	"farm-records/internal/platform/passhash"
	"farm-records/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Service struct {
	users    UserRepository
	sessions *SessionManager
	log      logger.Logger
	now      func() time.Time

	hash   func(string) (string, error)
	verify func(encoded, password string) (bool, error)
}

func NewService(users UserRepository, sessions *SessionManager, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		log:      log.With(map[string]any{"module": "accounts"}),
		now:      time.Now,
		hash:     passhash.Hash,
		verify:   passhash.Verify,
	}
}

// EnsureDefaultUser crea admin/1234 si no hay ningún usuario.
func (s *Service) EnsureDefaultUser(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := s.Register(ctx, DefaultUsername, DefaultPassword); err != nil && !errors.Is(err, ErrUsernameTaken) {
		return err
	}
	s.log.Warn("seeded default user, change its password", map[string]any{"username": DefaultUsername})
	return nil
}

func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, fmt.Errorf("%w: username required", ErrInvalidInput)
	}
	if len(password) < MinPasswordLen {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLen)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	phc, err := s.hash(password)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: phc,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return User{}, err
	}
	s.log.Info("user registered", map[string]any{"username": username})
	return u, nil
}

// Login verifica credenciales y abre una sesión. Devuelve el token bearer.
func (s *Service) Login(ctx context.Context, username, password string) (string, auth.Session, error) {
	username = strings.TrimSpace(username)
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", auth.Session{}, ErrInvalidCredentials
		}
		return "", auth.Session{}, err
	}

	ok, err := s.verify(u.PasswordHash, password)
	if err != nil || !ok {
		return "", auth.Session{}, ErrInvalidCredentials
	}

	token, sess, err := s.sessions.Issue(u.Username)
	if err != nil {
		return "", auth.Session{}, err
	}
	s.log.Info("session opened", map[string]any{"username": u.Username, "session_id": sess.ID})
	return token, sess, nil
}

// Logout destruye la sesión; el token deja de autenticar.
func (s *Service) Logout(ctx context.Context, sess auth.Session) error {
	if strings.TrimSpace(sess.ID) == "" {
		return ErrUnauthorized
	}
	s.sessions.Revoke(sess.ID)
	s.log.Info("session closed", map[string]any{"username": sess.Username, "session_id": sess.ID})
	return nil
}

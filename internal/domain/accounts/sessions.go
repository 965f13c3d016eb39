package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"farm-records/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrSessionInvalid = errors.New("session invalid or expired")
)

const DefaultSessionTTL = 24 * time.Hour

// SessionManager emite JWT HS256 (jti = id de sesión) y guarda las sesiones
// activas en memoria. Un token válido cuya sesión fue cerrada no autentica.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu     sync.Mutex
	active map[string]auth.Session
}

var _ auth.SessionResolver = (*SessionManager)(nil)

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		active: make(map[string]auth.Session),
	}
}

// Issue crea la sesión y su token.
func (m *SessionManager) Issue(username string) (string, auth.Session, error) {
	now := m.now()
	sess := auth.Session{
		ID:        uuid.NewString(),
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", auth.Session{}, fmt.Errorf("sign session token: %w", err)
	}

	m.mu.Lock()
	m.active[sess.ID] = sess
	m.mu.Unlock()
	return token, sess, nil
}

func (m *SessionManager) Resolve(ctx context.Context, token string) (auth.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Session{}, ErrTokenEmpty
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return auth.Session{}, ErrSessionInvalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.active[claims.ID]
	if !ok || sess.Username != claims.Subject {
		return auth.Session{}, ErrSessionInvalid
	}
	if !m.now().Before(sess.ExpiresAt) {
		delete(m.active, sess.ID)
		return auth.Session{}, ErrSessionInvalid
	}
	return sess, nil
}

// Revoke cierra la sesión (idempotente).
func (m *SessionManager) Revoke(id string) {
	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()
}

// Sweep borra sesiones vencidas y devuelve cuántas quitó.
func (m *SessionManager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.active {
		if !now.Before(s.ExpiresAt) {
			delete(m.active, id)
			n++
		}
	}
	return n
}

func (m *SessionManager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

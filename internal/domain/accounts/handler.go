package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"farm-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth. loginLimit (opcional) envuelve solo el login.
func RegisterRoutes(r chi.Router, svc *Service, loginLimit func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))

		login := http.Handler(loginHandler(svc))
		if loginLimit != nil {
			login = loginLimit(login)
		}
		ar.Method(http.MethodPost, "/login", login)

		ar.Post("/logout", logoutHandler(svc))
		ar.Get("/me", meHandler())
	})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionResponse struct {
	SessionID string    `json:"session_id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description username obligatorio, password de al menos 4 caracteres.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Credenciales"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 409 {string} string "username already exists"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	}
}

// loginHandler godoc
// @Summary Login
// @Description Abre una sesión y devuelve un token Bearer. Limitado por IP.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid credentials"
// @Failure 429 {string} string "too many requests"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		token, sess, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{
			Token:     token,
			SessionID: sess.ID,
			Username:  sess.Username,
			ExpiresAt: sess.ExpiresAt,
		})
	}
}

// logoutHandler godoc
// @Summary Logout
// @Description Cierra la sesión actual; el token deja de servir.
// @Tags auth
// @Param Authorization header string true "Bearer <token>"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Router /auth/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := svc.Logout(r.Context(), sess); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			SessionID: sess.ID,
			Username:  sess.Username,
			IssuedAt:  sess.IssuedAt,
			ExpiresAt: sess.ExpiresAt,
		})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUsernameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

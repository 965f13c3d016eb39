package middleware

import (
	"context"
	"net/http"
	"strings"

	"farm-records/internal/ports/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionContext:
// - Si viene Bearer token y resolver != nil => intenta Resolve() y setea la sesión.
// - Sin sesión el request sigue igual; los handlers deciden si exigen login (401).
func SessionContext(resolver auth.SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if resolver == nil || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	if !ok || strings.TrimSpace(s.Username) == "" {
		return auth.Session{}, false
	}
	return s, true
}

// BearerToken extrae el token del header Authorization (vacío si no es Bearer).
func BearerToken(r *http.Request) string {
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

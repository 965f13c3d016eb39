package auth

import "context"

// SessionResolver valida un token y devuelve la sesión activa o error.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (Session, error)
}

package auth

import "time"

// Session es la identidad explícita de un usuario logueado.
// Se crea en login y se destruye en logout; nada la lee de estado global.
type Session struct {
	ID        string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

package accounts

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC
	CreatedAt    time.Time
}

const (
	DefaultUsername = "admin"
	DefaultPassword = "1234"

	MinPasswordLen = 4
)

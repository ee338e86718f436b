package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	UserID       int
	UserName     string
	UserLastname string
	UserEmail    string
	UserActive   bool
	jwt.RegisteredClaims
}

// StateClaims são as claims do token de estado usado no fluxo OAuth.
// O token é assinado ao iniciar o fluxo e validado no callback para
// reidentificar o usuário que iniciou a autorização.
type StateClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

type Claims struct {
	UserID    string
	UserName  string
	UserEmail string
	UserRole  string
	jwt.RegisteredClaims
}

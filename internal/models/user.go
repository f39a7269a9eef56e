package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx/types"
)

// User holds an account record. Accounts gate deadline mutations; schedule
// generation itself stays open, matching the original upload flow.
type User struct {
	ID           string         `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	Name         string         `db:"name" json:"name"`
	UserType     string         `db:"user_type" json:"user_type"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Preferences  types.JSONText `db:"preferences" json:"preferences,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// UserTypeStudent is the default account type.
const UserTypeStudent = "student"

// JWTClaims is the token payload issued at login.
type JWTClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

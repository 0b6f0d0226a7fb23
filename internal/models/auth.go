package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
	User      UserInfo  `json:"user"`
}

// CreateUserRequest is the admin-only account creation payload.
type CreateUserRequest struct {
	Username string       `json:"username" validate:"required,min=3"`
	Password string       `json:"password" validate:"required,min=6"`
	Name     string       `json:"name" validate:"required"`
	Role     UserRole     `json:"role" validate:"required,oneof=admin student"`
	Info     *StudentInfo `json:"student_info,omitempty"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

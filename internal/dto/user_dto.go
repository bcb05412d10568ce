package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // always "access"
	jwt.RegisteredClaims
}

// RegisterRequest represents the request body for creating an account.
// @Description Request body for registration
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in.
// @Description Request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user. The password hash never leaves
// the service layer.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
// @Description Issued access token and the authenticated user
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// IdentityResponse echoes the identity resolved from the bearer token.
type IdentityResponse struct {
	Success bool     `json:"success"`
	User    Identity `json:"user"`
}

type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserEnvelope wraps a single user record.
type UserEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// UserListResponse lists all registered users.
type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
	Count   int            `json:"count"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DBTestResponse reports database connectivity.
type DBTestResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	UsersCount int       `json:"usersCount"`
	Timestamp  time.Time `json:"timestamp"`
}

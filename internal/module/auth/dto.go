package auth

import "time"

// LoginRequest carries operator credentials from either the JSON API or
// the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

// RegisterRequest carries the fields for a new operator account.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

// TokenResponse is the session token handed back after a login.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// RegisterResponse is the public slice of a freshly created operator.
// The password hash never leaves the service layer.
type RegisterResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

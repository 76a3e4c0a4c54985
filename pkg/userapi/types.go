// Package userapi holds the request and response types of the user service
// HTTP API. Sibling services and client code can depend on it without
// pulling in server internals.
package userapi

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username          string `json:"username" validate:"required,min=3,max=64"`
	Email             string `json:"email" validate:"omitempty,email"`
	Password          string `json:"password" validate:"required,min=8"`
	FullName          string `json:"fullName" validate:"max=128"`
	Gender            string `json:"gender" validate:"max=32"`
	DateOfBirth       string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	City              string `json:"city" validate:"max=128"`
	Country           string `json:"country" validate:"max=128"`
	Bio               string `json:"bio" validate:"max=1024"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,url"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}. It carries the same
// fields as registration, except the password is optional: when empty the
// stored credential is left untouched.
type UpdateUserRequest struct {
	Username          string `json:"username" validate:"required,min=3,max=64"`
	Email             string `json:"email" validate:"omitempty,email"`
	Password          string `json:"password" validate:"omitempty,min=8"`
	FullName          string `json:"fullName" validate:"max=128"`
	Gender            string `json:"gender" validate:"max=32"`
	DateOfBirth       string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	City              string `json:"city" validate:"max=128"`
	Country           string `json:"country" validate:"max=128"`
	Bio               string `json:"bio" validate:"max=1024"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,url"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	// Token is the signed JWT bearer token.
	Token string `json:"token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
}

// UserResponse is the public representation of a user. It never carries the
// password hash.
type UserResponse struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email,omitempty"`
	FullName          string `json:"fullName,omitempty"`
	Gender            string `json:"gender,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	Bio               string `json:"bio,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	CreatedAt         string `json:"createdAt,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

// HealthResponse is returned by the liveness and readiness endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

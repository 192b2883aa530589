package models

import (
	"errors"
	"strings"
)

var ErrMissingCredentials = errors.New("username and password are required")

// LoginRequest is the operator credential payload for POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks both fields are present
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token     string `json:"token,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"` // seconds
	Message   string `json:"message"`
}

package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"cloudToolkit/internal/auth"
	"cloudToolkit/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler logs the configured operator in
type AuthHandler struct {
	JWTManager   auth.JWTGenerator
	Username     string
	PasswordHash string // bcrypt
	TokenTTL     time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtManager auth.JWTGenerator, username, passwordHash string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		JWTManager:   jwtManager,
		Username:     username,
		PasswordHash: passwordHash,
		TokenTTL:     ttl,
	}
}

// Login validates the operator credentials and returns a JWT token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.PasswordHash == "" {
		http.Error(w, "Login is not configured", http.StatusServiceUnavailable)
		return
	}

	// compare both so a wrong username costs the same as a wrong password
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		log.Warn().Str("username", req.Username).Msg("login rejected")
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := h.JWTManager.Generate(req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.TokenTTL.Seconds()),
		Message:   "Login successful",
	})
}

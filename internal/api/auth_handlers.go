package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/woodenmart/internal/auth"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	creds      auth.Credentials
	jwtService *auth.JWTService
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(creds auth.Credentials, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		creds:      creds,
		jwtService: jwtService,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the authentication response
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Login checks the static admin credentials and issues a token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !h.creds.Match(req.Email, req.Password) {
		respondJSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, _, err := h.jwtService.Generate(req.Email, auth.RoleAdmin)
	if err != nil {
		respondJSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		Role:  auth.RoleAdmin,
		Email: req.Email,
	})
}

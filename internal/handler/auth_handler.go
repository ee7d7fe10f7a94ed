package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"mycask-api/internal/metrics"
	"mycask-api/internal/model"
)

// authService is the protocol surface the HTTP layer depends on.
type authService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error)
	Login(ctx context.Context, email string, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

type AuthHandler struct {
	service authService
}

func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeValidationError(w, "Invalid JSON body", "")
		return
	}

	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" {
		writeValidationError(w, "Email is required", "email")
		return
	}
	if _, err := mail.ParseAddress(payload.Email); err != nil {
		writeValidationError(w, "Invalid email address", "email")
		return
	}
	if payload.Password == "" {
		writeValidationError(w, "Password is required", "password")
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		writeError(w, err)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusCreated, user)
}

// Login accepts the form-encoded credential fields of the OAuth2 password
// flow: "username" carries the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if err := r.ParseForm(); err != nil {
		writeValidationError(w, "Invalid form body", "")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if email == "" {
		writeValidationError(w, "Username is required", "username")
		return
	}
	if password == "" {
		writeValidationError(w, "Password is required", "password")
		return
	}

	tokens, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, tokens)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeValidationError(w, "Invalid JSON body", "")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), strings.TrimSpace(payload.RefreshToken))
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		writeError(w, err)
		return
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, tokens)
}

package api

import (
	"net/http"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/service/user"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// Register creates an account and returns its public projection.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "email, password (min 6 chars) and name are required")
		return
	}

	u, err := h.svc.Users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err == user.ErrEmailTaken {
		respondError(w, http.StatusBadRequest, "email is already registered")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusCreated, map[string]interface{}{
		"user": u.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a bearer token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, u, err := h.svc.Users.Login(r.Context(), req.Email, req.Password)
	switch err {
	case nil:
	case user.ErrInvalidCredentials:
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	case user.ErrDeactivated:
		respondError(w, http.StatusUnauthorized, "account is deactivated")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u.Public(),
	})
}

// Me returns the authenticated user's public projection.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respondData(w, http.StatusOK, u.Public())
}

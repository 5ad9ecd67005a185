package api

import (
	"net/http"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/account"
)

// GetProfile returns the caller's profile, creating it on first access.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	p, err := h.svc.Accounts.GetOrCreateProfile(r.Context(), u.ID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, p)
}

// UpdateProfile replaces the caller's profile fields.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var input account.ProfileInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Accounts.UpdateProfile(r.Context(), u.ID, input)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, p)
}

// GetAppConfig returns the caller's app configuration, creating it on first
// access.
func (h *Handlers) GetAppConfig(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	c, err := h.svc.Accounts.GetOrCreateConfig(r.Context(), u.ID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, c)
}

type updateConfigRequest struct {
	Integrations domain.Integrations `json:"integrations"`
}

// UpdateAppConfig replaces the caller's integrations blob.
func (h *Handlers) UpdateAppConfig(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req updateConfigRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Accounts.UpdateConfig(r.Context(), u.ID, req.Integrations)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, c)
}

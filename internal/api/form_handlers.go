package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/form"
)

// GetCampaignForm serves the public survey form for a campaign, falling
// back to the built-in default. No auth: the survey page is public.
func (h *Handlers) GetCampaignForm(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")
	if !validUUID(campaignID) {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	f, err := h.svc.Forms.GetPublic(r.Context(), campaignID)
	if err == form.ErrCampaignNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, f)
}

type saveFormRequest struct {
	Fields []domain.FormField `json:"fields"`
}

// SaveCampaignForm creates or replaces the campaign's custom form.
func (h *Handlers) SaveCampaignForm(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req saveFormRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Forms.Save(r.Context(), u.ID, chi.URLParam(r, "campaignId"), req.Fields)
	if err == form.ErrCampaignNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusOK, f)
}

// DeleteCampaignForm reverts the campaign to the default form.
func (h *Handlers) DeleteCampaignForm(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	err := h.svc.Forms.Delete(r.Context(), u.ID, chi.URLParam(r, "campaignId"))
	if err == form.ErrCampaignNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "form reset to default")
}

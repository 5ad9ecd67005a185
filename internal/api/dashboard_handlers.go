package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/service/campaign"
	"github.com/meunps/platform/internal/service/response"
)

// GetCampaignDashboard returns the NPS summary and trend for one of the
// caller's campaigns.
func (h *Handlers) GetCampaignDashboard(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	campaignID := chi.URLParam(r, "id")

	// Ownership check first, so a foreign campaign 404s instead of serving
	// an empty dashboard.
	if _, err := h.svc.Campaigns.Get(r.Context(), u.ID, campaignID); err != nil {
		if err == campaign.ErrNotFound {
			respondError(w, http.StatusNotFound, "campaign not found")
			return
		}
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}

	summary, err := h.svc.Dashboard.CampaignSummary(r.Context(), u.ID, campaignID)
	if err == response.ErrCampaignNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, summary)
}

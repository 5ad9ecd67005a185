package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/campaign"
)

// ListCampaigns returns the caller's campaigns with pagination metadata.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	f := campaign.ListFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		f.Active = &active
	}

	campaigns, total, err := h.svc.Campaigns.List(r.Context(), u.ID, f)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"campaigns": campaigns,
		"total":     total,
	})
}

// GetCampaign returns one campaign owned by the caller.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	c, err := h.svc.Campaigns.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err == campaign.ErrNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, c)
}

// GetPublicCampaign serves the survey landing page data: name and
// customization only, no owner internals.
func (h *Handlers) GetPublicCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validUUID(id) {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	c, err := h.svc.Campaigns.GetPublic(r.Context(), id)
	if err == campaign.ErrNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"id":                   c.ID,
		"name":                 c.Name,
		"survey_customization": c.Customization,
		"accepting":            c.AcceptsSubmissionsAt(time.Now()),
	})
}

// CreateCampaign creates a campaign owned by the caller.
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var input campaign.CreateInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Campaigns.Create(r.Context(), u.ID, input)
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusCreated, c)
}

// campaignUpdateRequest distinguishes "field absent" from "field set to
// null" for the nullable columns.
type campaignUpdateRequest struct {
	Name               *string                     `json:"name"`
	Description        *string                     `json:"description"`
	StartDate          *time.Time                  `json:"start_date"`
	EndDate            **time.Time                 `json:"end_date"`
	Active             *bool                       `json:"active"`
	DefaultSourceID    **string                    `json:"default_source_id"`
	DefaultSituationID **string                    `json:"default_situation_id"`
	DefaultGroupID     **string                    `json:"default_group_id"`
	Customization      *domain.SurveyCustomization `json:"survey_customization"`
	Automation         *domain.AutomationConfig    `json:"automation"`
}

// UpdateCampaign applies a partial update to a campaign owned by the caller.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req campaignUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Campaigns.Update(r.Context(), u.ID, chi.URLParam(r, "id"), campaign.UpdateFields(req))
	if err == campaign.ErrNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusOK, c)
}

// DeleteCampaign removes a campaign owned by the caller.
func (h *Handlers) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	err := h.svc.Campaigns.Delete(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err == campaign.ErrNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "campaign deleted")
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

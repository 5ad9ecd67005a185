package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/response"
)

// SubmitResponse records a public survey submission. No auth; the campaign
// id in the body selects the target.
func (h *Handlers) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var input response.SubmitInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validUUID(input.CampaignID) {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	for _, link := range []*string{input.SourceID, input.SituationID, input.GroupID} {
		if link != nil && !validUUID(*link) {
			respondError(w, http.StatusBadRequest, "invalid classification id")
			return
		}
	}

	resp, err := h.svc.Responses.Submit(r.Context(), input)
	switch err {
	case nil:
	case response.ErrInvalidScore:
		respondError(w, http.StatusBadRequest, "score must be between 0 and 10")
		return
	case response.ErrCampaignNotFound:
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	case response.ErrCampaignClosed:
		respondError(w, http.StatusBadRequest, "campaign is not accepting responses")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}

	// Dashboards for this campaign are now stale.
	if h.svc.Dashboard != nil {
		h.svc.Dashboard.InvalidateCampaign(r.Context(), resp.CampaignID)
	}
	// Public callers get an acknowledgment, not the stored row.
	respondData(w, http.StatusCreated, map[string]interface{}{
		"id":         resp.ID,
		"created_at": resp.CreatedAt,
	})
}

// ListResponses returns a campaign's responses for its owner, with optional
// time and taxonomy filters.
func (h *Handlers) ListResponses(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	f := response.ListFilter{
		Limit:  queryInt(r, "limit", 100),
		Offset: queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = &t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = &t
		}
	}
	if v := r.URL.Query().Get("source_id"); v != "" {
		f.SourceID = &v
	}
	if v := r.URL.Query().Get("group_id"); v != "" {
		f.GroupID = &v
	}

	responses, err := h.svc.Responses.ListByCampaign(r.Context(), u.ID, chi.URLParam(r, "campaignId"), f)
	if err == response.ErrCampaignNotFound {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	if responses == nil {
		responses = []domain.NpsResponse{}
	}
	respondData(w, http.StatusOK, responses)
}

// DeleteResponse removes a response from one of the caller's campaigns.
func (h *Handlers) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	err := h.svc.Responses.Delete(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err == response.ErrNotFound {
		respondError(w, http.StatusNotFound, "response not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "response deleted")
}

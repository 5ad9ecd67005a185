package api

import (
	"net/http"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/service/campaign"
)

type testEmailRequest struct {
	To       string `json:"to" validate:"required,email"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
}

// SendTestEmail renders and delivers one message to the given address.
func (h *Handlers) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	if h.svc.Mail == nil {
		respondError(w, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}

	var req testEmailRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "a valid destination address is required")
		return
	}
	if req.Subject == "" {
		req.Subject = "Teste de envio - Meu NPS"
	}

	if err := h.svc.Mail.SendTest(r.Context(), req.To, req.Subject, req.Template); err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "email delivery failed")
		return
	}
	respondMessage(w, http.StatusOK, "test email sent")
}

type campaignEmailRequest struct {
	CampaignID string   `json:"campaign_id" validate:"required"`
	Subject    string   `json:"subject" validate:"required"`
	Template   string   `json:"template"`
	ContactIDs []string `json:"contact_ids" validate:"required,min=1"`
}

// SendCampaignEmail sends personalized survey invitations to the caller's
// selected contacts and reports per-recipient outcomes.
func (h *Handlers) SendCampaignEmail(w http.ResponseWriter, r *http.Request) {
	if h.svc.Mail == nil {
		respondError(w, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}
	u := auth.UserFromContext(r.Context())

	var req campaignEmailRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "campaign_id, subject and at least one contact are required")
		return
	}

	results, err := h.svc.Mail.SendCampaign(r.Context(), u.ID, req.CampaignID, req.Subject, req.Template, req.ContactIDs)
	switch err {
	case nil:
	case campaign.ErrNotFound:
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}

	sent := 0
	for _, res := range results {
		if res.Sent {
			sent++
		}
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"sent":    sent,
		"failed":  len(results) - sent,
		"results": results,
	})
}

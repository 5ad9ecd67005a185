package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/affiliate"
)

// GetAffiliate returns the caller's affiliate record, creating it (with a
// fresh referral code) on first access.
func (h *Handlers) GetAffiliate(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	a, err := h.svc.Affiliates.GetOrCreate(r.Context(), u.ID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, a)
}

type bankAccountRequest struct {
	BankAccount domain.BankAccount `json:"bank_account"`
}

// UpdateBankAccount replaces the caller's payout details.
func (h *Handlers) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req bankAccountRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.svc.Affiliates.UpdateBankAccount(r.Context(), u.ID, req.BankAccount)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, a)
}

// ListReferrals returns the caller's referrals, newest first.
func (h *Handlers) ListReferrals(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	refs, err := h.svc.Affiliates.ListReferrals(r.Context(), u.ID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	if refs == nil {
		refs = []domain.AffiliateReferral{}
	}
	respondData(w, http.StatusOK, refs)
}

type addReferralRequest struct {
	ReferredEmail string  `json:"referred_email" validate:"required,email"`
	Commission    float64 `json:"commission" validate:"gte=0"`
}

// AddReferral records an introduction; totals are recomputed atomically.
func (h *Handlers) AddReferral(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req addReferralRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "referred_email is required and commission cannot be negative")
		return
	}

	ref, err := h.svc.Affiliates.AddReferral(r.Context(), u.ID, req.ReferredEmail, req.Commission)
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusCreated, ref)
}

type referralStatusRequest struct {
	Status domain.ReferralStatus `json:"status"`
}

// SetReferralStatus transitions one of the caller's referrals.
func (h *Handlers) SetReferralStatus(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req referralStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.Affiliates.SetReferralStatus(r.Context(), u.ID, chi.URLParam(r, "id"), req.Status)
	switch err {
	case nil:
	case affiliate.ErrInvalidStatus:
		respondError(w, http.StatusBadRequest, "status must be pending, paid or cancelled")
		return
	case affiliate.ErrReferralNotFound:
		respondError(w, http.StatusNotFound, "referral not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "referral updated")
}

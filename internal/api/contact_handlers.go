package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/contact"
)

// ListContacts returns the caller's contacts with search and filters.
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	f := contact.ListFilter{
		Search:  r.URL.Query().Get("search"),
		GroupID: r.URL.Query().Get("group_id"),
		Tag:     r.URL.Query().Get("tag"),
		Limit:   queryInt(r, "limit", 50),
		Offset:  queryInt(r, "offset", 0),
	}

	contacts, total, err := h.svc.Contacts.List(r.Context(), u.ID, f)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"total":    total,
	})
}

// GetContact returns one contact owned by the caller.
func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	c, err := h.svc.Contacts.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err == contact.ErrNotFound {
		respondError(w, http.StatusNotFound, "contact not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, c)
}

// CreateContact adds a contact for the caller.
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var input contact.CreateInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Contacts.Create(r.Context(), u.ID, input)
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusCreated, c)
}

// UpdateContact replaces a contact's fields.
func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var input contact.CreateInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Contacts.Update(r.Context(), u.ID, chi.URLParam(r, "id"), input)
	if err == contact.ErrNotFound {
		respondError(w, http.StatusNotFound, "contact not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusOK, c)
}

// DeleteContact removes a contact owned by the caller.
func (h *Handlers) DeleteContact(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	err := h.svc.Contacts.Delete(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err == contact.ErrNotFound {
		respondError(w, http.StatusNotFound, "contact not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "contact deleted")
}

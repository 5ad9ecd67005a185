package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/taxonomy"
)

// entityKind maps the /api/entities/{kind} path segment to a taxonomy kind.
// The URL uses plural nouns; the domain uses singular kinds.
func entityKind(r *http.Request) domain.TaxonomyKind {
	switch chi.URLParam(r, "kind") {
	case "sources":
		return domain.TaxonomySource
	case "situations":
		return domain.TaxonomySituation
	case "groups":
		return domain.TaxonomyGroup
	}
	return ""
}

// ListEntities returns every entry of one kind for the caller.
func (h *Handlers) ListEntities(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	entries, err := h.svc.Taxonomies.List(r.Context(), entityKind(r), u.ID)
	if err == taxonomy.ErrUnknownKind {
		respondError(w, http.StatusNotFound, "unknown entity kind")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	if entries == nil {
		entries = []domain.Taxonomy{}
	}
	respondData(w, http.StatusOK, entries)
}

// GetEntity returns a single entry of one kind owned by the caller.
func (h *Handlers) GetEntity(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	t, err := h.svc.Taxonomies.Get(r.Context(), entityKind(r), u.ID, chi.URLParam(r, "id"))
	switch err {
	case nil:
	case taxonomy.ErrUnknownKind:
		respondError(w, http.StatusNotFound, "unknown entity kind")
		return
	case taxonomy.ErrNotFound:
		respondError(w, http.StatusNotFound, "entity not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondData(w, http.StatusOK, t)
}

// CreateEntity creates one taxonomy entry for the caller.
func (h *Handlers) CreateEntity(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var input taxonomy.CreateInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Taxonomies.Create(r.Context(), entityKind(r), u.ID, input)
	if err == taxonomy.ErrUnknownKind {
		respondError(w, http.StatusNotFound, "unknown entity kind")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusCreated, t)
}

// UpdateEntity replaces the mutable fields of an entry owned by the caller.
func (h *Handlers) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var input taxonomy.CreateInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Taxonomies.Update(r.Context(), entityKind(r), u.ID, chi.URLParam(r, "id"), input)
	switch err {
	case nil:
	case taxonomy.ErrUnknownKind:
		respondError(w, http.StatusNotFound, "unknown entity kind")
		return
	case taxonomy.ErrNotFound:
		respondError(w, http.StatusNotFound, "entity not found")
		return
	default:
		respondError(w, http.StatusBadRequest, safeErrorMessage(400, err))
		return
	}
	respondData(w, http.StatusOK, t)
}

// DeleteEntity removes an entry owned by the caller. Responses referencing
// it keep their rows with the link nulled by the schema.
func (h *Handlers) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	err := h.svc.Taxonomies.Delete(r.Context(), entityKind(r), u.ID, chi.URLParam(r, "id"))
	switch err {
	case nil:
	case taxonomy.ErrUnknownKind:
		respondError(w, http.StatusNotFound, "unknown entity kind")
		return
	case taxonomy.ErrNotFound:
		respondError(w, http.StatusNotFound, "entity not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "entity deleted")
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/admin"
)

// AdminListUsers returns every account for the admin panel.
func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Admin.ListUsers(r.Context())
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}

	out := make([]domain.PublicUser, 0, len(users))
	deactivated := make(map[string]bool, len(users))
	for _, u := range users {
		out = append(out, u.Public())
		deactivated[u.ID] = u.IsDeactivated
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"users":       out,
		"deactivated": deactivated,
	})
}

// AdminDeactivateUser flags the target and stops their campaigns.
func (h *Handlers) AdminDeactivateUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	err := h.svc.Admin.DeactivateUser(r.Context(), actor.ID, chi.URLParam(r, "id"))
	switch err {
	case nil:
	case admin.ErrSelfAction:
		respondError(w, http.StatusBadRequest, "cannot deactivate your own account")
		return
	case admin.ErrUserNotFound:
		respondError(w, http.StatusNotFound, "user not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "user deactivated")
}

// AdminReactivateUser clears the deactivation flag. Campaigns stay
// inactive; the owner re-enables them individually.
func (h *Handlers) AdminReactivateUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	err := h.svc.Admin.ReactivateUser(r.Context(), actor.ID, chi.URLParam(r, "id"))
	switch err {
	case nil:
	case admin.ErrUserNotFound:
		respondError(w, http.StatusNotFound, "user not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "user reactivated")
}

// AdminDeleteUser hard-deletes the target and everything they own.
func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	err := h.svc.Admin.DeleteUser(r.Context(), actor.ID, chi.URLParam(r, "id"))
	switch err {
	case nil:
	case admin.ErrSelfAction:
		respondError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	case admin.ErrUserNotFound:
		respondError(w, http.StatusNotFound, "user not found")
		return
	default:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(500, err))
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}

package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/meunps/platform/internal/domain"
)

// userContextKey carries the authenticated *domain.User through the request.
type userContextKey struct{}

// UserLoader resolves a user id from a bearer token to a live record.
type UserLoader interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
}

// AdminLoader resolves the admin grant for a user, if any.
// ok is false when no user_admins row exists.
type AdminLoader interface {
	AdminPermissions(ctx context.Context, userID string) (domain.AdminPermissions, bool, error)
}

// Middleware authenticates bearer tokens and attaches the user to the
// request context.
type Middleware struct {
	tokens *TokenManager
	users  UserLoader
	admins AdminLoader
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(tokens *TokenManager, users UserLoader, admins AdminLoader) *Middleware {
	return &Middleware{tokens: tokens, users: users, admins: admins}
}

// RequireAuth verifies the Authorization header, loads the user, and rejects
// deactivated accounts.
//
// Status mapping: missing token 401, bad/expired token 403, user missing or
// deactivated 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		user, err := m.users.ByID(r.Context(), claims.UserID)
		if err != nil || user == nil {
			writeAuthError(w, http.StatusUnauthorized, "user not found")
			return
		}
		if user.IsDeactivated {
			writeAuthError(w, http.StatusUnauthorized, "account is deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route group behind a user_admins row with
// view_users permission. Must run inside RequireAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		perms, ok, err := m.admins.AdminPermissions(r.Context(), user.ID)
		if err != nil {
			log.Printf("[auth.Middleware] admin lookup for %s: %v", user.ID, err)
			writeAuthError(w, http.StatusInternalServerError, "An internal error occurred")
			return
		}
		if !ok || !perms.ViewUsers {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user, or nil outside
// RequireAuth.
func UserFromContext(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(userContextKey{}).(*domain.User); ok {
		return u
	}
	return nil
}

// ContextWithUser injects a user for tests and internal calls.
func ContextWithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Same envelope the api package uses for every other error.
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": msg})
}

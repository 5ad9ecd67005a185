package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/config"
	"github.com/meunps/platform/internal/domain"
)

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 168})
	require.NoError(t, err)
	return tm
}

func TestTokenManagerRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager(config.AuthConfig{})
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	tm := newTokens(t)
	u := &domain.User{ID: "u-1", Email: "ana@example.com", Role: domain.RoleUser}

	token, err := tm.Issue(u)
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := newTokens(t)
	_, err := tm.Verify("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	tm := newTokens(t)
	other, err := auth.NewTokenManager(config.AuthConfig{JWTSecret: "other-secret", TokenTTLHours: 1})
	require.NoError(t, err)

	token, err := other.Issue(&domain.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3nha-forte", 0)
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha-forte", hash)
	assert.True(t, auth.CheckPassword(hash, "s3nha-forte"))
	assert.False(t, auth.CheckPassword(hash, "errada"))
}

// stubs for middleware tests

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

type stubAdmins struct {
	perms map[string]domain.AdminPermissions
}

func (s *stubAdmins) AdminPermissions(_ context.Context, userID string) (domain.AdminPermissions, bool, error) {
	p, ok := s.perms[userID]
	return p, ok, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthStatusMapping(t *testing.T) {
	tm := newTokens(t)
	active := &domain.User{ID: "u-1", Email: "a@x.com", Role: domain.RoleUser}
	deactivated := &domain.User{ID: "u-2", Email: "b@x.com", Role: domain.RoleUser, IsDeactivated: true}
	mw := auth.NewMiddleware(tm, &stubUsers{users: map[string]*domain.User{
		"u-1": active,
		"u-2": deactivated,
	}}, &stubAdmins{})

	handler := mw.RequireAuth(okHandler())

	goodToken, err := tm.Issue(active)
	require.NoError(t, err)
	deactivatedToken, err := tm.Issue(deactivated)
	require.NoError(t, err)
	ghostToken, err := tm.Issue(&domain.User{ID: "u-gone"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusForbidden},
		{"unknown user", "Bearer " + ghostToken, http.StatusUnauthorized},
		{"deactivated user", "Bearer " + deactivatedToken, http.StatusUnauthorized},
		{"valid", "Bearer " + goodToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequireAdminGate(t *testing.T) {
	tm := newTokens(t)
	user := &domain.User{ID: "u-1", Role: domain.RoleAdmin}
	admins := &stubAdmins{perms: map[string]domain.AdminPermissions{
		"u-1": {ViewUsers: true},
		"u-3": {ViewUsers: false},
	}}
	mw := auth.NewMiddleware(tm, &stubUsers{}, admins)
	handler := mw.RequireAdmin(okHandler())

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), user))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("permission false", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), &domain.User{ID: "u-3"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no admin row", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), &domain.User{ID: "u-9"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

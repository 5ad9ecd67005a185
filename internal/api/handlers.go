// Package api exposes the HTTP surface: chi routes, bearer-token auth,
// request validation and the JSON envelope the frontend consumes.
package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meunps/platform/internal/config"
	"github.com/meunps/platform/internal/dashboard"
	"github.com/meunps/platform/internal/mail"
	"github.com/meunps/platform/internal/service/account"
	"github.com/meunps/platform/internal/service/admin"
	"github.com/meunps/platform/internal/service/affiliate"
	"github.com/meunps/platform/internal/service/campaign"
	"github.com/meunps/platform/internal/service/contact"
	"github.com/meunps/platform/internal/service/form"
	"github.com/meunps/platform/internal/service/response"
	"github.com/meunps/platform/internal/service/taxonomy"
	"github.com/meunps/platform/internal/service/user"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Users      *user.Service
	Campaigns  *campaign.Service
	Forms      *form.Service
	Responses  *response.Service
	Taxonomies *taxonomy.Service
	Contacts   *contact.Service
	Accounts   *account.Service
	Affiliates *affiliate.Service
	Admin      *admin.Service
	Dashboard  *dashboard.Service
	Mail       *mail.Service // nil when email delivery is disabled
}

// Handlers holds the route handlers and their dependencies.
type Handlers struct {
	svc            Services
	validate       *validator.Validate
	webhookTimeout time.Duration
	webhookClient  *http.Client
	startedAt      time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(svc Services, webhookCfg config.WebhookConfig) *Handlers {
	return &Handlers{
		svc:            svc,
		validate:       validator.New(),
		webhookTimeout: webhookCfg.Timeout(),
		webhookClient:  &http.Client{},
		startedAt:      time.Now(),
	}
}

// HealthCheck reports process liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}

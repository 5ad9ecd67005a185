package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/config"
)

// SetupRoutes configures the full route tree.
//
// Three tiers: public (health, auth, survey page, submission), bearer-token
// authenticated (/api/...), and admin (/api/admin/..., additionally gated by
// a user_admins row).
func SetupRoutes(h *Handlers, mw *auth.Middleware, corsCfg config.CORSConfig, limiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	r.Get("/health", h.HealthCheck)

	// Public auth endpoints
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)

	// Public survey surface: landing data, form, submission. Rate limited
	// because they face the open internet without credentials.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Get("/api/campaigns/public/{id}", h.GetPublicCampaign)
		r.Get("/api/forms/campaign/{campaignId}", h.GetCampaignForm)
		r.Post("/api/responses/submit", h.SubmitResponse)
	})

	// Authenticated API
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RequireAuth)

		r.Get("/auth/me", h.Me)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Post("/", h.CreateCampaign)
			r.Get("/{id}", h.GetCampaign)
			r.Put("/{id}", h.UpdateCampaign)
			r.Delete("/{id}", h.DeleteCampaign)
			r.Get("/{campaignId}/responses", h.ListResponses)
		})

		r.Route("/forms/campaign/{campaignId}", func(r chi.Router) {
			r.Post("/", h.SaveCampaignForm)
			r.Delete("/", h.DeleteCampaignForm)
		})

		r.Delete("/responses/{id}", h.DeleteResponse)

		// Sources, situations and groups share one handler set; the kind
		// segment selects the table.
		r.Route("/entities/{kind}", func(r chi.Router) {
			r.Get("/", h.ListEntities)
			r.Post("/", h.CreateEntity)
			r.Get("/{id}", h.GetEntity)
			r.Put("/{id}", h.UpdateEntity)
			r.Delete("/{id}", h.DeleteEntity)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.ListContacts)
			r.Post("/", h.CreateContact)
			r.Get("/{id}", h.GetContact)
			r.Put("/{id}", h.UpdateContact)
			r.Delete("/{id}", h.DeleteContact)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Put("/", h.UpdateProfile)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/", h.GetAppConfig)
			r.Put("/", h.UpdateAppConfig)
		})

		r.Route("/affiliate", func(r chi.Router) {
			r.Get("/", h.GetAffiliate)
			r.Put("/bank-account", h.UpdateBankAccount)
			r.Get("/referrals", h.ListReferrals)
			r.Post("/referrals", h.AddReferral)
			r.Put("/referrals/{id}/status", h.SetReferralStatus)
		})

		r.Get("/dashboard/campaigns/{id}", h.GetCampaignDashboard)

		r.Post("/email/test", h.SendTestEmail)
		r.Post("/email/campaign", h.SendCampaignEmail)

		r.Post("/webhook/proxy", h.ProxyWebhook)

		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Get("/users", h.AdminListUsers)
			r.Post("/users/{id}/deactivate", h.AdminDeactivateUser)
			r.Post("/users/{id}/reactivate", h.AdminReactivateUser)
			r.Delete("/users/{id}", h.AdminDeleteUser)
		})
	})

	return r
}

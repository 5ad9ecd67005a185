package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/meunps/platform/internal/api"
	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/config"
	"github.com/meunps/platform/internal/dashboard"
	"github.com/meunps/platform/internal/mail"
	"github.com/meunps/platform/internal/repository/postgres"
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

func main() {
	configPath := "config/config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("database url is required (config database.url or DATABASE_URL)")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("jwt secret is required (config auth.jwt_secret or JWT_SECRET)")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		log.Fatalf("Failed to ping database: %v", err)
	}
	cancelPing()
	log.Println("Connected to PostgreSQL")

	// Redis backs the dashboard cache and public rate limiting. Optional:
	// without it dashboards recompute on every request and limiting is off.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Warning: Redis unreachable at %s, continuing without cache: %v", cfg.Redis.Addr, err)
			redisClient = nil
		} else {
			log.Printf("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	users := user.NewService(postgres.NewUserRepo(db), tokens, cfg.Auth.BcryptCost)
	campaigns := campaign.NewService(postgres.NewCampaignRepo(db))
	forms := form.NewService(postgres.NewFormRepo(db))
	responses := response.NewService(postgres.NewResponseRepo(db))
	taxonomies := taxonomy.NewService(postgres.NewTaxonomyRepo(db))
	contacts := contact.NewService(postgres.NewContactRepo(db))
	accounts := account.NewService(postgres.NewAccountRepo(db))
	affiliates := affiliate.NewService(postgres.NewAffiliateRepo(db))
	adminSvc := admin.NewService(postgres.NewAdminRepo(db))
	dashboards := dashboard.NewService(responses, redisClient, dashboard.DefaultCacheTTL)

	var mailSvc *mail.Service
	if cfg.Email.Enabled {
		sender, err := mail.NewSESSender(context.Background(), cfg.Email)
		if err != nil {
			log.Fatalf("Failed to initialize SES sender: %v", err)
		}
		mailSvc = mail.NewService(sender, mail.NewTemplateEngine(), contacts, campaigns, cfg.Email.SurveyBaseURL)
		log.Printf("Email delivery enabled via SES (%s)", cfg.Email.Region)
	} else {
		log.Println("Email delivery disabled")
	}

	svc := api.Services{
		Users:      users,
		Campaigns:  campaigns,
		Forms:      forms,
		Responses:  responses,
		Taxonomies: taxonomies,
		Contacts:   contacts,
		Accounts:   accounts,
		Affiliates: affiliates,
		Admin:      adminSvc,
		Dashboard:  dashboards,
		Mail:       mailSvc,
	}

	mw := auth.NewMiddleware(tokens, users, adminSvc)
	limiter := api.NewRateLimiter(redisClient, cfg.RateLimit)
	server := api.NewServer(cfg, svc, mw, limiter)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		errCh <- server.ListenAndServe(addr)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-done:
		log.Printf("Received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"yuconz/internal/domain/audit"
	"yuconz/internal/domain/auth"
	"yuconz/internal/domain/personnel"
	"yuconz/internal/domain/review"
	"yuconz/internal/platform/config"
	"yuconz/internal/platform/db"
	audithandler "yuconz/internal/transport/http/handlers/audit"
	authhandler "yuconz/internal/transport/http/handlers/auth"
	personnelhandler "yuconz/internal/transport/http/handlers/personnel"
	reviewhandler "yuconz/internal/transport/http/handlers/review"
	"yuconz/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "insecure-dev-secret"
		slog.Warn("JWT_SECRET not set, using development default")
	}

	auditStore := audit.NewStore(pool)
	registry := auth.NewRegistry()
	credStore := auth.NewStore(pool)
	authenticator := auth.NewAuthenticator(credStore, registry, auditStore)

	reviewStore := review.NewStore(pool)
	authoriser := auth.NewAuthoriser(reviewStore, auditStore)

	reviewService := review.NewService(reviewStore, authoriser)
	personnelService := personnel.NewService(personnel.NewStore(pool), authoriser)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(secret, registry))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authenticator, secret, cfg.TokenTTL)
		r.With(middleware.RateLimit(10, time.Minute)).Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			personnelhandler.NewHandler(personnelService).RegisterRoutes(r)
			reviewhandler.NewHandler(reviewService).RegisterRoutes(r)
			audithandler.NewHandler(auditStore).RegisterRoutes(r)
		})
	})

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// Package main is the entrypoint for the TaxerPay API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/T69Chichass/TaxerPay-Backend/internal/auth"
	"github.com/T69Chichass/TaxerPay-Backend/internal/config"
	"github.com/T69Chichass/TaxerPay-Backend/internal/handler"
	"github.com/T69Chichass/TaxerPay-Backend/internal/middleware"
	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/repository"
	"github.com/T69Chichass/TaxerPay-Backend/internal/server"
	"github.com/T69Chichass/TaxerPay-Backend/internal/service"
)

func main() {
	ctx := context.Background()

	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize auth and services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(repo)
	taxRecordService := service.NewTaxRecordService(repo)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	userHandler := handler.NewAccountHandler(model.KindUser, accountService, tokens, logger)
	farmerHandler := handler.NewAccountHandler(model.KindFarmer, accountService, tokens, logger)
	adminHandler := handler.NewAccountHandler(model.KindAdmin, accountService, tokens, logger)
	taxHandler := handler.NewTaxHandler(taxRecordService, logger)

	r := setupRouter(h, healthHandler, userHandler, farmerHandler, adminHandler, taxHandler, tokens, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	userHandler *handler.AccountHandler,
	farmerHandler *handler.AccountHandler,
	adminHandler *handler.AccountHandler,
	taxHandler *handler.TaxHandler,
	tokens *auth.TokenManager,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(cfg.GetCORSAllowedOrigins()))

	authCfg := middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
	}
	requireAuth := middleware.Auth(authCfg)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Info)
		r.Get("/health", healthHandler.Health)

		// One auth surface per principal kind; same handler, different table.
		mountAccount := func(prefix string, ah *handler.AccountHandler, extra func(chi.Router)) {
			r.Route(prefix, func(r chi.Router) {
				r.Post("/register", ah.Register)
				r.Post("/login", ah.Login)

				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Get("/profile", ah.GetProfile)
					r.Put("/profile", ah.UpdateProfile)
					if extra != nil {
						extra(r)
					}
				})
			})
		}

		mountAccount("/auth", userHandler, nil)
		mountAccount("/farmer", farmerHandler, nil)
		mountAccount("/admin", adminHandler, func(r chi.Router) {
			r.Get("/farmers", adminHandler.ListFarmers)
		})

		r.Route("/tax", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/records", taxHandler.Create)
			r.Get("/records", taxHandler.List)
			r.Get("/records/{id}", taxHandler.Get)
			r.Put("/records/{id}", taxHandler.Update)
			r.Delete("/records/{id}", taxHandler.Delete)
			r.Post("/calculate", taxHandler.Calculate)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"qmatrix/internal/domain/assessment"
	"qmatrix/internal/domain/auth"
	"qmatrix/internal/domain/catalog"
	"qmatrix/internal/domain/employee"
	"qmatrix/internal/domain/projection"
	"qmatrix/internal/domain/qualification"
	"qmatrix/internal/platform/cache"
	"qmatrix/internal/platform/config"
	"qmatrix/internal/platform/db"
	"qmatrix/internal/platform/metrics"
	"qmatrix/internal/transport/http/api"
	assessmenthandler "qmatrix/internal/transport/http/handlers/assessment"
	authhandler "qmatrix/internal/transport/http/handlers/auth"
	cataloghandler "qmatrix/internal/transport/http/handlers/catalog"
	employeehandler "qmatrix/internal/transport/http/handlers/employee"
	qualificationhandler "qmatrix/internal/transport/http/handlers/qualification"
	reportshandler "qmatrix/internal/transport/http/handlers/reports"
	"qmatrix/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

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

	var reportCache *cache.Client
	if cfg.RedisAddr != "" {
		reportCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ReportCacheTTL)
		defer reportCache.Close()
		if err := reportCache.Ping(ctx); err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
	}

	collector := metrics.New()
	projectionService := projection.NewService(projection.NewStore(pool), reportCache, collector)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

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
		if err := reportCache.Ping(ctx); err != nil {
			http.Error(w, "cache not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/auth/mfa/setup", authHandler.HandleMFASetup)
			r.Post("/auth/mfa/enable", authHandler.HandleMFAEnable)
			r.Post("/auth/mfa/disable", authHandler.HandleMFADisable)

			catalogHandler := cataloghandler.NewHandler(catalog.NewService(catalog.NewStore(pool)))
			catalogHandler.RegisterRoutes(r)

			employeeHandler := employeehandler.NewHandler(employee.NewStore(pool))
			employeeHandler.RegisterRoutes(r)

			assessmentHandler := assessmenthandler.NewHandler(assessment.NewStore(pool))
			assessmentHandler.RegisterRoutes(r)

			qualificationHandler := qualificationhandler.NewHandler(qualification.NewService(qualification.NewStore(pool)))
			qualificationHandler.RegisterRoutes(r)

			reportsHandler := reportshandler.NewHandler(projectionService, cfg.MaxForecastMonths)
			reportsHandler.RegisterRoutes(r)
		})
	})

	log.Printf("qmatrix server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

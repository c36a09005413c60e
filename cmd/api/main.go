package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/clients/anthropic"
	"github.com/BUNNY1710/glassshop-backend/internal/config"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
	"github.com/BUNNY1710/glassshop-backend/internal/httpx"
	"github.com/BUNNY1710/glassshop-backend/internal/logger"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/advisor"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/alert"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/auth"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/customer"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/document"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/invoice"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/quotation"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/shop"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/stock"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stdout"}))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		baseLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, baseLogger.Named("migrate")); err != nil {
			baseLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// ── Identity & tenancy ──────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, baseLogger.Named("svc.user"))

	shopRepo := shop.NewPostgresRepository(db)
	shopService := shop.NewService(shopRepo, userRepo, baseLogger.Named("svc.shop"))

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	authService := auth.NewService(userRepo, tokens, baseLogger.Named("svc.auth"))
	authenticator := auth.NewAuthenticator(tokens, userRepo, baseLogger.Named("auth"))

	// ── Stock ───────────────────────────────────────────────
	catalogService := catalog.NewService(catalog.NewPostgresRepository(db))
	auditService := audit.NewService(audit.NewPostgresRepository(db))
	stockService := stock.NewService(stock.NewPostgresRepository(db), cfg.Stock.DefaultMinQuantity, baseLogger.Named("svc.stock"))

	// ── Billing ─────────────────────────────────────────────
	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo, baseLogger.Named("svc.customer"))

	quotationRepo := quotation.NewPostgresRepository(db)
	quotationService := quotation.NewService(quotationRepo, customerRepo, shopRepo, baseLogger.Named("svc.quotation"))

	invoiceRepo := invoice.NewPostgresRepository(db)
	invoiceService := invoice.NewService(invoiceRepo, quotationRepo, baseLogger.Named("svc.invoice"))

	documentService := document.NewService(quotationRepo, invoiceRepo, shopRepo, baseLogger.Named("svc.document"))

	// ── Advisor & alerts ────────────────────────────────────
	var llm advisor.Completer
	if cfg.AI.APIKey != "" {
		llm = anthropic.NewClient(cfg.AI)
		baseLogger.Info("llm explainer enabled", zap.String("model", cfg.AI.Model))
	} else {
		baseLogger.Warn("AI_API_KEY missing, stock explanations use the plain summary")
	}
	advisorService := advisor.NewService(stockService, auditService, llm, baseLogger.Named("svc.advisor"))

	if cfg.Alert.Enabled {
		var notifier alert.Notifier = alert.NewLogNotifier(baseLogger.Named("alert"))
		if cfg.Alert.WebhookURL != "" {
			notifier = alert.NewWebhookNotifier(cfg.Alert.WebhookURL)
		}
		sched := alert.NewScheduler(cfg.Alert.Cron, shopService, stockService, notifier, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start alert scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	// ── Router ──────────────────────────────────────────────
	routerLogger := baseLogger.Named("http")
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpx.RequestLogger(routerLogger))
	router.Use(middleware.Recoverer)
	router.Use(httpx.CORS(cfg.App.CORSOrigins))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.WriteError(w, r, "database unavailable", "UNAVAILABLE", http.StatusServiceUnavailable)
			return
		}
		httpx.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	advisorHandler := advisor.NewHandler(advisorService, routerLogger)
	shopHandler := shop.NewHandler(shopService, routerLogger)

	router.Route("/api/v1", func(r chi.Router) {
		auth.NewHandler(authService, routerLogger).RegisterRoutes(r)
		shopHandler.RegisterPublicRoutes(r)
		advisorHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authenticator.Middleware)

			user.NewHandler(userService, routerLogger).RegisterRoutes(r)
			shopHandler.RegisterRoutes(r)
			catalog.NewHandler(catalogService, routerLogger).RegisterRoutes(r)
			stock.NewHandler(stockService, routerLogger).RegisterRoutes(r)
			audit.NewHandler(auditService, routerLogger).RegisterRoutes(r)
			customer.NewHandler(customerService, routerLogger).RegisterRoutes(r)
			quotation.NewHandler(quotationService, routerLogger).RegisterRoutes(r)
			invoice.NewHandler(invoiceService, routerLogger).RegisterRoutes(r)
			document.NewHandler(documentService, routerLogger).RegisterRoutes(r)
			advisorHandler.RegisterRoutes(r)
		})
	})

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("glassshop api starting", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// Package app wires configuration, storage, domain services and the HTTP
// server into a running process.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/blissbakes/bakehouse/internal/auth"
	"github.com/blissbakes/bakehouse/internal/cart"
	"github.com/blissbakes/bakehouse/internal/httpapi"
	"github.com/blissbakes/bakehouse/internal/invoice"
	"github.com/blissbakes/bakehouse/internal/order"
	"github.com/blissbakes/bakehouse/internal/storage/postgres"
	"github.com/blissbakes/bakehouse/internal/views"
	"github.com/blissbakes/bakehouse/internal/whatsapp"
	"github.com/blissbakes/bakehouse/pkg/health"
	"github.com/blissbakes/bakehouse/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Health probes.
	healthSvc := health.NewService()
	healthSvc.Register(health.Readiness, "postgres", 5*time.Second, health.DatabaseCheck(pool))
	healthSvc.Register(health.Liveness, "goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	catalogRepo := postgres.NewCatalogRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	apikeyRepo := postgres.NewAPIKeyRepository(pool)
	viewRepo := postgres.NewViewRepository(pool)
	kvStore := postgres.NewKVStore(pool)

	// Domain services.
	orderService := order.NewService(catalogRepo, orderRepo)
	carts := cart.NewManager(kvStore, lg.Named("cart"))
	tracker := views.NewTracker(viewRepo, cfg.Views.ExpectedViews, cfg.Views.FalsePositiveRate)
	verifier := auth.NewVerifier(apikeyRepo, []byte(cfg.APIKeyPepper))
	composer := whatsapp.NewComposer(cfg.Store.WhatsApp, cfg.Store.Currency)
	invoices := invoice.NewRenderer(invoice.StoreInfo{
		Name:    cfg.Store.Name,
		Slogan:  cfg.Store.Slogan,
		Address: cfg.Store.Address,
		City:    cfg.Store.City,
		Phone:   cfg.Store.Phone,
	})

	// HTTP surface.
	h := httpapi.NewHandler(
		httpapi.Config{ImageBaseURL: cfg.ImageBaseURL},
		catalogRepo,
		carts,
		orderService,
		orderRepo,
		invoices,
		composer,
		tracker,
		verifier,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveHandler)
	mux.HandleFunc("/readyz", healthSvc.ReadyHandler)
	h.Routes(mux)

	rateLimiter := httpmiddleware.NewRateLimiter(ctx, httpmiddleware.RateLimitConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	})

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization", "api_key"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			rateLimiter.Middleware(),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("bakehouse-api",
				otelhttp.WithTracerProvider(m.TracerProvider()),
				otelhttp.WithMeterProvider(m.MeterProvider()),
			),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

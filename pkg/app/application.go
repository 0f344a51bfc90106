package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"stayquest/pkg/auth"
	"stayquest/pkg/config"
	"stayquest/pkg/contracts"
	"stayquest/pkg/metrics"
	"stayquest/pkg/middleware"
)

type Application struct {
	cfg              *config.Config
	server           *http.Server
	registry         *prometheus.Registry
	idempotencyStore middleware.IdempotencyStore
	rateLimiter      *middleware.ClientRateLimiter
	checks           map[string]contracts.Pinger
	closers          []io.Closer
	handler          http.Handler
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{
		cfg:      cfg,
		registry: metrics.InitRegistry(),
		checks:   make(map[string]contracts.Pinger),
	}
}

// AddReadinessCheck registers a dependency pinged by /ready.
func (a *Application) AddReadinessCheck(name string, pinger contracts.Pinger) {
	a.checks[name] = pinger
}

// OnShutdown registers a resource closed after the server has drained.
func (a *Application) OnShutdown(c io.Closer) {
	a.closers = append(a.closers, c)
}

// SetApp builds the HTTP stack. authenticate attaches the caller's identity
// and runs before idempotency so stored responses are scoped per user.
func (a *Application) SetApp(authenticate func(http.Handler) http.Handler, handlers ...contracts.Handler) {
	appRouter := httprouter.New()
	appRouter.NotFound = middleware.NotFound()
	appRouter.MethodNotAllowed = middleware.MethodNotAllowed()
	appRouter.HandleMethodNotAllowed = true
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	a.idempotencyStore = a.newIdempotencyStore()
	a.rateLimiter = middleware.NewClientRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst, middleware.ClientIP, a.cfg.Log)

	appHandler := middleware.Chain(appRouter,
		middleware.Recovery(a.cfg.Log),
		middleware.RequestLogging(a.cfg.Log),
		middleware.Metrics(),
		middleware.CORS(a.cfg.CORSAllowedOrigin),
		middleware.RequestTimeout(a.cfg.RequestTimeout),
		middleware.RateLimit(a.rateLimiter),
		middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize)),
		authenticate,
		middleware.Idempotency(a.idempotencyStore, userScope, a.cfg.Log),
	)
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")

	healthRouter := httprouter.New()
	NewHealthHandler(a.checks, a.cfg.Log).RegisterRoutes(healthRouter)
	healthHandler := middleware.Chain(healthRouter,
		middleware.Recovery(a.cfg.Log),
		middleware.RequestLogging(a.cfg.Log),
	)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/metrics", metrics.Handler(a.registry))
	mux.Handle("/", appHandler)
	a.handler = mux

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}
	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Handler returns the root handler built by SetApp.
func (a *Application) Handler() http.Handler {
	return a.handler
}

func (a *Application) newIdempotencyStore() middleware.IdempotencyStore {
	if a.cfg.Client != nil && a.cfg.Client.Redis != nil {
		a.cfg.Log.Info("Using Redis idempotency store")
		return middleware.NewRedisIdempotencyStore(a.cfg.Client.Redis, a.cfg.IdempotencyTTL)
	}
	a.cfg.Log.Info("Using in-memory idempotency store")
	return middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
}

func userScope(r *http.Request) string {
	return auth.UserIDFromContext(r.Context())
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.releaseResources()
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Could not stop server gracefully", "error", err)
		}
	}

	a.releaseResources()
	a.cfg.Log.Info("Server stopped gracefully")
}

// releaseResources stops background workers, then closes registered
// resources and finally the shared connections.
func (a *Application) releaseResources() {
	a.cfg.Log.Info("Stopping background workers...")
	if a.idempotencyStore != nil {
		a.idempotencyStore.Stop()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.cfg.Log.Error("Failed to close resource", "error", err)
		}
	}

	if a.cfg.Client != nil {
		a.cfg.GracefulShutdown()
	}
}

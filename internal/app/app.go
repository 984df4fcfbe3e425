package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"

	"moviedash/internal/config"
	"moviedash/internal/dashboard"
	"moviedash/internal/dataprocessing"
	apierrors "moviedash/internal/errors"
	"moviedash/internal/infrastructure"
	customMiddleware "moviedash/internal/middleware"
	"moviedash/internal/services"
	handlers "moviedash/internal/transport/http"
	ws "moviedash/internal/websocket"
	"moviedash/pkg/contracts"
	"moviedash/pkg/contracts/domain"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	BaseTable     *domain.BaseTable
	Dashboard     *services.DashboardService
	Health        *services.HealthService
	Sessions      *ws.Registry

	errorHandler *apierrors.ErrorHandler
	listener     net.Listener
}

// NewApplication loads configuration from the environment, initializes the
// global logger and builds the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires every component for cfg. The movie file is loaded here; a load
// failure is logged and returned so the process can exit non-zero.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("commit", contracts.GitCommit),
		slog.String("data_file", cfg.Data.File))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		errorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	if err := app.initializeServices(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, err
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the base table and creates the services over it
func (a *Application) initializeServices() error {
	base, err := dataprocessing.BuildBaseTable(a.Config.Data.File, a.Logger)
	if err != nil {
		a.Logger.Error("Failed to load movie data",
			slog.String("file", a.Config.Data.File),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to load movie data: %w", err)
	}
	a.BaseTable = base

	opts := dashboard.Options{
		HistogramBins: a.Config.Data.HistogramBins,
		DensityPoints: a.Config.Data.DensityPoints,
		TopN:          a.Config.Data.TopN,
		VoteThreshold: a.Config.Data.VoteThreshold,
	}
	dashboardService, err := services.NewDashboardService(base, opts, a.Logger,
		services.WithTracer(a.OTelProviders.Tracer),
		services.WithMetrics(a.Metrics))
	if err != nil {
		return fmt.Errorf("failed to initialize dashboard service: %w", err)
	}
	a.Dashboard = dashboardService

	var sessions services.SessionCounter
	if a.Config.WebSocket.Enabled {
		a.Sessions = ws.NewRegistry(a.Metrics, a.Logger)
		sessions = a.Sessions
	}

	a.Health = services.NewHealthService(contracts.Version, contracts.BuildTime, dashboardService, sessions, a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Order: RequestID → RealIP → OTel → Logger → Recoverer → headers → limits
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(a.errorHandler.Recoverer)
	r.Use(customMiddleware.DefaultSecureHeaders().Handler)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.corsConfig()))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			a.errorHandler,
		).Handler)
	}

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	// The socket outlives any request timeout and must not be compressed
	if a.Sessions != nil {
		wsHandler := ws.NewHandler(a.Dashboard, a.Sessions, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger)
		r.With(customMiddleware.WebSocketTraceMiddleware(a.Logger)).Get("/ws", wsHandler.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(customMiddleware.Compress(5))

		pageHandler := handlers.NewPageHandler(a.Dashboard, a.Sessions != nil, a.Logger, a.errorHandler)
		r.Get("/", pageHandler.ServeHTTP)

		a.setupAPIRoutes(r)
	})

	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.errorHandler))

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	validator := customMiddleware.NewValidator(customMiddleware.DefaultMaxBodyBytes)

	r.Route("/api", func(r chi.Router) {
		healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, validator, a.Logger, a.errorHandler)
		dashboardHandler.RegisterRoutes(r)

		clientLogHandler := handlers.NewClientLogHandler(nil, a.Logger, a.errorHandler)
		r.With(customMiddleware.ContentTypeValidator("application/json")).Post("/client-log", clientLogHandler.Handle)
	})
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port)),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
	if a.Sessions != nil {
		// Hijacked connections are not tracked by Shutdown
		a.Server.RegisterOnShutdown(a.Sessions.CloseAll)
	}
}

// Addr returns the address the server listens on once started
func (a *Application) Addr() string {
	if a.listener == nil {
		return a.Server.Addr
	}
	return a.listener.Addr().String()
}

// Start binds the listener and serves in the background. A serve failure
// calls cancel so Run can shut down.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", "http://"+ln.Addr().String()),
		slog.Int("movies", len(a.BaseTable.Records)),
		slog.Bool("live_updates", a.Sessions != nil),
		slog.String("level", a.Config.Logging.Level))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run serves until SIGINT or SIGTERM, then shuts down
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx, stop); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	return a.Stop(context.Background())
}

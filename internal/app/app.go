package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"user_register/internal/config"
	"user_register/internal/handler"
	"user_register/internal/metrics"
	"user_register/internal/middleware"
	"user_register/internal/repository"
	"user_register/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// App is a connected user store plus the HTTP server in front of it.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	userRepo repository.UserRepository
	router   *gin.Engine
}

// New connects the configured store and builds the router.
// Connection failures are returned; the caller decides whether to exit.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	userRepo, err := OpenUserRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithRepository(cfg, logger, userRepo), nil
}

// NewWithRepository builds an App around an already connected store.
// Tests use it to substitute the in-memory store.
func NewWithRepository(cfg *config.Config, logger *slog.Logger, userRepo repository.UserRepository) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		userRepo: userRepo,
		router:   NewRouter(cfg, logger, userRepo, prometheus.NewRegistry()),
	}
}

// OpenUserRepository connects to the backend selected by cfg.DBType.
func OpenUserRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.UserRepository, error) {
	switch cfg.DBType {
	case config.DBTypeMongo:
		db, err := config.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := config.EnsureMongoIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		return repository.NewMongoUserRepository(db), nil
	case config.DBTypePostgres:
		pool, err := config.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := config.AutoMigrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return repository.NewPostgresUserRepository(pool), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDBType, cfg.DBType)
	}
}

// NewRouter wires middlewares, API routes and static assets.
func NewRouter(cfg *config.Config, logger *slog.Logger, userRepo repository.UserRepository, reg *prometheus.Registry) *gin.Engine {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	registerService := service.NewRegisterService(userRepo)
	registerHandler := handler.NewRegisterHandler(registerService, logger, m)
	staticHandler := handler.NewStaticHandler(cfg.StaticDir)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(logger, m),
		middleware.CORSMiddleware(),
	)

	registerHandler.RegisterRoutes(router)
	router.GET("/health", handler.Health(userRepo))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.NoRoute(staticHandler.Serve)

	return router
}

// Handler exposes the router, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts down and closes the store.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.cfg.Addr(),
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server running", "url", "http://localhost:"+a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = a.userRepo.Close(context.Background())
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = a.userRepo.Close(context.Background())
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := a.userRepo.Close(shutdownCtx); err != nil {
		return fmt.Errorf("failed to close user store: %w", err)
	}

	a.logger.Info("server exiting")
	return nil
}

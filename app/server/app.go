// Package server assembles the blog from its configuration and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cheeseblog/app/config"
	"cheeseblog/app/logging"
	"cheeseblog/app/middleware"
	"cheeseblog/app/repositories"
	"cheeseblog/app/routes"
	"cheeseblog/app/services"
	"cheeseblog/app/sessions"
	"cheeseblog/app/views"

	"github.com/dgraph-io/badger/v4"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// App owns the open stores and the HTTP handler built on them.
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       *sqlx.DB
	Sessions *badger.DB
	Store    *sessions.Store
	Metrics  *middleware.Metrics
	Handler  http.Handler

	limiter *middleware.RateLimiter
}

// NewApp validates cfg, opens both stores, applies migrations and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := repositories.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(ctx, db.DB, logging.GooseLogger{Entry: logger.WithField("component", "migrate")}); err != nil {
		db.Close()
		return nil, err
	}

	sessionDB, err := sessions.Open(cfg.SessionPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	templates, err := views.Load(views.Templates())
	if err != nil {
		db.Close()
		sessionDB.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	store := sessions.NewStore(sessionDB, []byte(cfg.SecretKey), cfg.SessionTTL)
	store.SetSecure(cfg.SecureCookie)

	accountRepo := repositories.NewSQLiteAccountRepository(db)
	postRepo := repositories.NewSQLitePostRepository(db)
	commentRepo := repositories.NewSQLiteCommentRepository(db)

	app := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Sessions: sessionDB,
		Store:    store,
		limiter:  middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst, logger),
	}
	if cfg.MetricsAddr != "" {
		app.Metrics = middleware.NewMetrics()
	}

	app.Handler = routes.SetupRoutes(routes.Dependencies{
		Templates:    templates,
		Static:       views.Static(),
		Store:        store,
		Auth:         services.NewAuthService(accountRepo),
		Posts:        services.NewPostService(postRepo, commentRepo),
		Comments:     services.NewCommentService(commentRepo, postRepo),
		AdminID:      cfg.AdminID,
		Logger:       logger,
		Metrics:      app.Metrics,
		LoginLimiter: app.limiter,
	})
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	servers := []*http.Server{newHTTPServer(a.Config.Addr, a.Handler)}
	if a.Metrics != nil {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", a.Metrics.Handler())
		servers = append(servers, newHTTPServer(a.Config.MetricsAddr, metricsMux))
	}

	stop := make(chan struct{})
	defer close(stop)
	a.limiter.StartCleanup(time.Minute, stop)

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			a.Logger.WithField("addr", srv.Addr).Info("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("shutting down")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).WithField("addr", srv.Addr).Warn("shutdown error")
		}
	}
	return runErr
}

// Close releases both stores.
func (a *App) Close() error {
	return errors.Join(a.DB.Close(), a.Sessions.Close())
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

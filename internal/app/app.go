package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"minesweep/internal/config"
	"minesweep/internal/middleware"
	"minesweep/internal/store"
)

type App struct {
	log      *logrus.Logger
	cfg      config.Config
	router   *http.ServeMux
	sessions *store.Store
}

func New(log *logrus.Logger, cfg config.Config) *App {
	return &App{
		log:      log,
		cfg:      cfg,
		router:   http.NewServeMux(),
		sessions: store.New(),
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	a.loadRoutes()

	server := &http.Server{
		Addr: a.cfg.Addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.log),
		),
	}

	a.log.WithField("addr", a.cfg.Addr).Info("server listening")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

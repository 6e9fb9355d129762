package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/classic-mines/internal/config"
	"github.com/vancomm/classic-mines/internal/middleware"
	"github.com/vancomm/classic-mines/internal/session"
)

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	store   *session.Store
	cookies *config.Cookies
	ws      *config.WebSocket

	// IdleTimeout is how long a game may stay untouched before the sweeper
	// drops it. Zero keeps games forever.
	IdleTimeout time.Duration
}

func New(logger *slog.Logger, cookies *config.Cookies, ws *config.WebSocket) *App {
	app := &App{
		logger:      logger,
		router:      http.NewServeMux(),
		store:       session.NewStore(),
		cookies:     cookies,
		ws:          ws,
		IdleTimeout: 30 * time.Minute,
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Session(a.logger, a.cookies),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

// Start serves on addr until ctx is done or the listener fails.
func (a *App) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(ctx)
	})
	g.Go(func() error {
		a.sweep(gCtx)
		return nil
	})

	return g.Wait()
}

func (a *App) sweep(ctx context.Context) {
	if a.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(a.IdleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.store.Sweep(a.IdleTimeout); n > 0 {
				a.logger.Debug("dropped idle games", slog.Int("count", n))
			}
		}
	}
}

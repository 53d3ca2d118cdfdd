package app

import (
	"context"

	"log/slog"

	"github.com/travelops/contact-insights/config"
	httpapi "github.com/travelops/contact-insights/internal/api/http"
	"github.com/travelops/contact-insights/internal/apisrv/auth"
	"github.com/travelops/contact-insights/internal/apisrv/dashboard"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/export"
	"github.com/travelops/contact-insights/internal/filecleanup"
	"github.com/travelops/contact-insights/internal/store"
	"github.com/travelops/contact-insights/internal/tokenstore"
)

// App is the main application
type App struct {
	hs      *httpapi.Server
	db      dependency.Repository
	tokens  *tokenstore.Store
	cleanup *filecleanup.Worker
	c       *config.Config
	done    chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting contact insights")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql", slog.String("err", err.Error()))
		return err
	}

	a.tokens, err = tokenstore.New(ctx, a.c.Redis)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to redis", slog.String("err", err.Error()))
		return err
	}

	authS, err := auth.New(&a.c.Auth, a.db, a.tokens)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server", slog.String("err", err.Error()))
		return err
	}

	renderer := export.New(&a.c.Export, a.db)
	dashS := dashboard.New(a.db, authS, renderer)

	a.cleanup = filecleanup.New(&a.c.FileCleanup, a.db)
	if err := a.cleanup.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start file cleanup worker", slog.String("err", err.Error()))
		return err
	}

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, authS, dashS, a.db, a.tokens); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.cleanup != nil {
		_ = a.cleanup.Stop()
	}
	if a.hs != nil {
		_ = a.hs.Stop(ctx)
	}
	if a.tokens != nil {
		_ = a.tokens.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/epalma/noticiero/config"
	"github.com/epalma/noticiero/internal/auth"
	"github.com/epalma/noticiero/internal/db"
	"github.com/epalma/noticiero/internal/feed"
	"github.com/epalma/noticiero/internal/newsroom"
	"github.com/epalma/noticiero/internal/rest"
	"github.com/epalma/noticiero/internal/rpc"
	"github.com/epalma/noticiero/internal/storage"
)

const (
	rpcPath = "/rpc"

	defaultSessionLifetime = 24 * time.Hour
	defaultStorageDir      = "./storage"
	defaultStaticPrefix    = "/static"
)

type App struct {
	Repo   *db.Repository
	Broker *feed.Broker
	Logger *slog.Logger
	Echo   *echo.Echo
	Config *config.Config

	stopListen context.CancelFunc
}

func New(cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	dbConnect.AddQueryHook(db.NewQueryHook(logger))
	repo := db.New(dbConnect)

	manager := newsroom.NewManager(repo, logger)
	broker := feed.NewBroker(repo, logger)

	sessions := scs.New()
	sessions.Lifetime = defaultSessionLifetime
	if cfg.Session.Lifetime != "" {
		lifetime, err := time.ParseDuration(cfg.Session.Lifetime)
		if err != nil {
			return nil, fmt.Errorf("parse session lifetime: %w", err)
		}
		sessions.Lifetime = lifetime
	}

	storageDir := cfg.Storage.Dir
	if storageDir == "" {
		storageDir = defaultStorageDir
	}
	staticPrefix := cfg.Storage.PublicPrefix
	if staticPrefix == "" {
		staticPrefix = defaultStaticPrefix
	}

	handler := rest.NewHandler(
		manager,
		broker,
		auth.NewPG(dbConnect),
		sessions,
		storage.NewDisk(storageDir, staticPrefix),
		staticPrefix,
		storageDir,
		logger,
	)

	e := handler.RegisterRoutes()
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, manager)))

	return &App{
		Repo:   repo,
		Broker: broker,
		Logger: logger,
		Echo:   e,
		Config: cfg,
	}, nil
}

// Run starts the NOTIFY listener and the HTTP server. It blocks until the
// server stops.
func (a *App) Run(ctx context.Context, dbConnect *pg.DB, port int) error {
	listenCtx, cancel := context.WithCancel(ctx)
	a.stopListen = cancel

	go func() {
		err := a.Broker.Listen(listenCtx, dbConnect)
		if err != nil && listenCtx.Err() == nil {
			a.Logger.Error("news events listener stopped", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, port)
	err := a.Echo.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	if a.stopListen != nil {
		a.stopListen()
	}

	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

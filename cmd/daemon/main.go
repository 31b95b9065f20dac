package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/mister-ben/mediasessiond/internal/artwork"
	"github.com/mister-ben/mediasessiond/internal/config"
	"github.com/mister-ben/mediasessiond/internal/domain"
	"github.com/mister-ben/mediasessiond/internal/player"
	"github.com/mister-ben/mediasessiond/internal/session"
	"github.com/mister-ben/mediasessiond/internal/surface"
)

// AppOptions is the complete dependency graph of the daemon.
// Kept as a variable so tests can validate it with fx.ValidateApp.
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,

		// Configuration
		func(logger *zap.Logger) domain.Config { return config.NewAppConfig(logger) },

		// Artwork resolution for the surface
		func(logger *zap.Logger, cfg domain.Config) domain.ArtResolver {
			return artwork.NewResolver(logger, cfg)
		},

		// Player engine (MPD)
		player.NewMPDPlayer,
		func(p *player.MPDPlayer) domain.Player { return p },

		// OS media-control surface (MPRIS); nil when the desktop has none
		surface.New,

		// The session core
		session.New,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),

		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	mpdPlayer *player.MPDPlayer,
	surf domain.Surface,
	sess *session.Session,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := mpdPlayer.Start(); err != nil {
				return err
			}
			sess.Setup()
			logger.Info("mediasessiond started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			if surf != nil {
				if err := surf.Close(); err != nil {
					logger.Warn("failed to close media-control surface", zap.Error(err))
				}
			}
			return mpdPlayer.Stop()
		},
	})
}

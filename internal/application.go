package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/paintgrid-backend/internal/config"
	"github.com/rocketscienceinc/paintgrid-backend/internal/engine"
	"github.com/rocketscienceinc/paintgrid-backend/internal/repository"
	"github.com/rocketscienceinc/paintgrid-backend/internal/repository/storage"
	"github.com/rocketscienceinc/paintgrid-backend/internal/service"
	"github.com/rocketscienceinc/paintgrid-backend/internal/world"
	"github.com/rocketscienceinc/paintgrid-backend/transport/rest"
	"github.com/rocketscienceinc/paintgrid-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sessionRepo := repository.NewSessionRepository(redisStorage)
	sessionService := service.NewSessionService(sessionRepo, conf.Session.TTL)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // spawn points and colors, not secrets
	syncEngine := engine.New(logger, world.NewRegistry(rnd), world.NewGrid())

	// run the sync engine
	engineErrCh := make(chan error, 1)
	go func() {
		if engineErr := syncEngine.Run(ctx); engineErr != nil {
			log.Error("Sync engine error", "error", engineErr)
			engineErrCh <- engineErr
		}
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, sessionService)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, syncEngine, sessionService)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-engineErrCh:
		return fmt.Errorf("sync engine error: %w", err)
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
	"github.com/rocketscienceinc/paintgrid-backend/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type sessionService interface {
	Create(ctx context.Context, name string) (*entity.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type Server struct {
	logger   *slog.Logger
	sessions sessionService
}

func New(logger *slog.Logger, sessions sessionService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

// Start - serves the HTTP API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler - builds the API router. The browser client is served from another
// origin, so the router answers preflight requests for it.
func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Get("/ping", handlers.Ping)
	router.Post("/api/session", that.handleCreateSession)
	router.Delete("/api/session/{token}", that.handleDeleteSession)

	return router
}

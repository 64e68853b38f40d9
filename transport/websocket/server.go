package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/paintgrid-backend/internal/apperror"
	"github.com/rocketscienceinc/paintgrid-backend/internal/engine"
	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
	"github.com/rocketscienceinc/paintgrid-backend/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type syncEngine interface {
	Connect(ctx context.Context, name string, client engine.Client) (*entity.Participant, error)
	Move(id string, dx, dy int)
	Respawn(id string)
	Disconnect(id string)
}

type sessionStore interface {
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
}

type Server struct {
	logger   *slog.Logger
	engine   syncEngine
	sessions sessionStore
	upgrader websocket.Upgrader

	handlers map[string]func(client *Client, message *engine.Message) error
}

func New(logger *slog.Logger, syncEngine syncEngine, sessions sessionStore) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		engine:   syncEngine,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the session token is the gate, not the request origin
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		handlers: make(map[string]func(*Client, *engine.Message) error),
	}

	server.handlers[engine.ActionMove] = server.handleMove
	server.handlers[engine.ActionRespawn] = server.handleRespawn

	return server
}

// Start - serves websocket connections until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler - the /ws endpoint plus a liveness probe for this port.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleWS)
	mux.HandleFunc("/ping", handlers.Ping)

	return mux
}

// handleWS - the session gate and the lifecycle of one connection: resolve
// the token, upgrade, hand the engine a validated display name, then pump
// until the connection dies.
func (that *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleWS")

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing session token", http.StatusUnauthorized)
		return
	}

	session, err := that.sessions.GetByToken(r.Context(), token)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	if err != nil {
		log.Error("failed to resolve session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(that.logger, conn)
	go client.writePump()

	participant, err := that.engine.Connect(r.Context(), session.Name, client)
	if err != nil {
		log.Error("failed to connect participant", "error", err)
		client.close()
		return
	}

	client.participantID = participant.ID
	log.Info("client connected", "participant_id", participant.ID, "name", session.Name)

	client.readPump(that)
}

func (that *Server) handleMessage(client *Client, raw []byte) {
	log := that.logger.With("method", "handleMessage")

	var message engine.Message
	if err := json.Unmarshal(raw, &message); err != nil {
		log.Error("failed to unmarshal message", "error", err)
		that.sendError(client, "malformed message")
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		that.sendError(client, "unknown action: "+message.Action)
		return
	}

	if err := handler(client, &message); err != nil {
		log.Error("error processing message", "action", message.Action, "error", err)
		that.sendError(client, err.Error())
	}
}

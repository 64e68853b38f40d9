package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/paintgrid-backend/internal/apperror"
)

type createSessionRequest struct {
	Name string `json:"name"`
}

// handleCreateSession - issues the token a client presents at the websocket
// handshake. This is the only gate in front of the world: whoever holds a
// valid token gets a validated connection with the session's display name.
func (that *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCreateSession")

	var request createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := that.sessions.Create(r.Context(), request.Name)
	if errors.Is(err, apperror.ErrNameRequired) {
		http.Error(w, "display name is required", http.StatusBadRequest)
		return
	}

	if err != nil {
		log.Error("failed to create session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err = json.NewEncoder(w).Encode(session); err != nil {
		log.Error("failed to encode session response", "error", err)
	}
}

// handleDeleteSession - revokes a token so later websocket handshakes with
// it fail. Connections already established stay up: the token gates the
// handshake only.
func (that *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleDeleteSession")

	token := chi.URLParam(r, "token")

	if err := that.sessions.DeleteByToken(r.Context(), token); err != nil {
		log.Error("failed to delete session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

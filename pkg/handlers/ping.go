// Package handlers holds plain http handlers shared by every listening port.
package handlers

import "net/http"

// Ping - the liveness probe. Both the API port and the websocket port mount
// it, so a balancer can check either without speaking the sync protocol.
func Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

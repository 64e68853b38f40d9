package websocket

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// upgradedConn - dials a throwaway echo-less server and returns the server
// side of the upgraded connection.
func upgradedConn(t *testing.T) *websocket.Conn {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		conns <- conn
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/"

	peer, _, err := websocket.DefaultDialer.Dial(url, nil) //nolint:bodyclose // the response body is the connection
	require.NoError(t, err)
	t.Cleanup(func() { _ = peer.Close() })

	select {
	case conn := <-conns:
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	case <-time.After(readTimeout):
		t.Fatal("timed out waiting for the upgrade")
		return nil
	}
}

func TestClient_Send(t *testing.T) {
	t.Run("Tears the connection down on overflow instead of blocking", func(t *testing.T) {
		// Given: a connected client whose write pump never drains
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		client := newClient(logger, upgradedConn(t))

		// When: more messages arrive than the send buffer holds
		for i := 0; i < sendBufferSize+1; i++ {
			client.Send([]byte("delta"))
		}

		// Then: the client is closed rather than the sender blocked
		select {
		case <-client.done:
		case <-time.After(readTimeout):
			t.Fatal("expected the overflowing client to be closed")
		}

		// Then: sends on the closed client stay safe no-ops
		client.Send([]byte("delta"))
	})
}

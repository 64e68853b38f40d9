package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

// Client - one websocket connection. The read pump feeds inbound events to
// the engine, the write pump drains the send buffer; the engine talks to the
// client only through Send.
type Client struct {
	logger *slog.Logger
	conn   *websocket.Conn

	send chan []byte
	done chan struct{}

	closeOnce sync.Once

	// participantID is written by the handshake goroutine before the read
	// pump starts and read only from that goroutine afterwards. The engine
	// goroutine must never touch it: it only calls Send.
	participantID string
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *Client {
	return &Client{
		logger: logger.With("remote_addr", conn.RemoteAddr().String()),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Send - queues a message for the write pump without ever blocking the
// caller. A full buffer means the consumer has fallen too far behind; the
// connection is torn down and the read pump delivers the disconnect.
func (that *Client) Send(message []byte) {
	select {
	case that.send <- message:
	default:
		that.logger.Warn("send buffer overflow, closing connection")
		that.close()
	}
}

func (that *Client) close() {
	that.closeOnce.Do(func() {
		close(that.done)

		if err := that.conn.Close(); err != nil {
			that.logger.Debug("failed to close connection", "error", err)
		}
	})
}

// readPump - reads inbound frames until the connection dies, then reports
// the disconnect. Liveness comes from the read deadline refreshed by pongs.
func (that *Client) readPump(server *Server) {
	defer func() {
		that.close()
		server.engine.Disconnect(that.participantID)
	}()

	that.conn.SetReadLimit(maxMessageSize)

	if err := that.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		that.logger.Error("failed to set read deadline", "error", err)
		return
	}

	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Error("unexpected connection close", "participant_id", that.participantID, "error", err)
			}
			return
		}

		server.handleMessage(that, raw)
	}
}

// writePump - pushes queued messages and heartbeat pings to the peer.
func (that *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.close()
	}()

	for {
		select {
		case message := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				that.logger.Debug("failed to write ping", "error", err)
				return
			}

		case <-that.done:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

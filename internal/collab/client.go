package collab

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is the joining side of a session.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
	log  *slog.Logger
}

// Dial connects to a host discovered at addr (host:port). onOp receives
// relayed ops on a network goroutine; the caller must marshal applies onto
// the event thread.
func Dial(addr string, onOp func(Op), log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	url := fmt.Sprintf("ws://%s/session", addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{conn: conn, log: log}
	go func() {
		defer conn.Close()
		for {
			var op Op
			if err := conn.ReadJSON(&op); err != nil {
				log.Info("session closed", "err", err)
				return
			}
			if onOp != nil {
				onOp(op)
			}
		}
	}()
	return c, nil
}

// Send pushes a locally originated op to the host, which relays it onward.
func (c *Client) Send(op Op) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(op); err != nil {
		return fmt.Errorf("send op: %w", err)
	}
	return nil
}

// Close ends the session.
func (c *Client) Close() error { return c.conn.Close() }

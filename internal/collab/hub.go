package collab

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// peer is one connected co-author. gorilla allows a single concurrent
// writer per conn, so every write goes through the peer's mutex.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) send(op Op) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(op)
}

// Hub is the host side of a session: it accepts websocket clients, applies
// their ops locally via OnOp, and relays every op to the other peers.
type Hub struct {
	log  *slog.Logger
	onOp func(Op)

	mu    sync.Mutex
	peers map[*peer]struct{}

	upgrader websocket.Upgrader
}

// NewHub creates a hub. onOp receives every remote op exactly once (dedupe
// is the caller's Log) and is called from network goroutines; the caller
// must marshal it onto the event thread.
func NewHub(onOp func(Op), log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:   log,
		onOp:  onOp,
		peers: make(map[*peer]struct{}),
		// Same-LAN clients connect from arbitrary origins.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler upgrades an HTTP request to a session websocket.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		p := &peer{conn: conn}
		h.mu.Lock()
		h.peers[p] = struct{}{}
		h.mu.Unlock()
		h.log.Info("peer connected", "remote", conn.RemoteAddr().String())
		go h.readLoop(p)
	})
}

// ListenAndServe serves the session endpoint at /session on addr. It blocks.
func (h *Hub) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/session", h.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("session server: %w", err)
	}
	return nil
}

func (h *Hub) readLoop(p *peer) {
	defer h.drop(p)
	for {
		var op Op
		if err := p.conn.ReadJSON(&op); err != nil {
			h.log.Info("peer disconnected", "remote", p.conn.RemoteAddr().String(), "err", err)
			return
		}
		if h.onOp != nil {
			h.onOp(op)
		}
		h.broadcast(op, p)
	}
}

// Broadcast sends a locally originated op to every peer.
func (h *Hub) Broadcast(op Op) { h.broadcast(op, nil) }

func (h *Hub) broadcast(op Op, except *peer) {
	h.mu.Lock()
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		if p != except {
			peers = append(peers, p)
		}
	}
	h.mu.Unlock()
	for _, p := range peers {
		if err := p.send(op); err != nil {
			h.log.Warn("send failed, dropping peer", "remote", p.conn.RemoteAddr().String(), "err", err)
			h.drop(p)
		}
	}
}

func (h *Hub) drop(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	h.mu.Unlock()
	if ok {
		p.conn.Close()
	}
}

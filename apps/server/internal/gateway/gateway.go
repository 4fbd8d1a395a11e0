package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"holdem-session/apps/server/internal/lobby"
	"holdem-session/protocol"
)

const (
	connIDLen       = 10
	maxAcceptDelay  = time.Second
	poolExpiry      = time.Minute
	shutdownTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  protocol.MaxFrameSize,
	WriteBufferSize: protocol.MaxFrameSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway accepts client connections over TCP and WebSocket and runs each
// one on the worker pool.
type Gateway struct {
	log   *zap.Logger
	lobby *lobby.Lobby
	pool  *ants.Pool

	mu          sync.RWMutex
	connections map[string]*Connection
}

func New(lby *lobby.Lobby, logger *zap.Logger) (*Gateway, error) {
	log := logger.Named("gateway")
	pool, err := ants.NewPool(-1,
		ants.WithExpiryDuration(poolExpiry),
		ants.WithPanicHandler(func(p any) {
			log.Error("worker panic", zap.Any("panic", p), zap.Stack("stack"))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}
	return &Gateway{
		log:         log,
		lobby:       lby,
		pool:        pool,
		connections: make(map[string]*Connection),
	}, nil
}

// Serve accepts TCP connections until ctx is cancelled or lis is closed.
// Accept errors are logged and retried with backoff.
func (g *Gateway) Serve(ctx context.Context, lis net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = lis.Close() })
	defer stop()

	g.log.Info("listening", zap.String("addr", lis.Addr().String()))
	var delay time.Duration
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				g.log.Info("listener closed", zap.String("addr", lis.Addr().String()))
				return nil
			}
			delay = min(max(2*delay, 5*time.Millisecond), maxAcceptDelay)
			g.log.Warn("accept failed", zap.Error(err), zap.Duration("retry_in", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		delay = 0
		g.serve(newTCPTransport(conn))
	}
}

// HandleWebSocket upgrades the request and serves it like a TCP connection.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	g.serve(newWSTransport(conn))
}

// Handler routes /ws and /health.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.HandleWebSocket)
	mux.HandleFunc("/health", g.HandleHealth)
	return mux
}

// HandleHealth reports liveness with connection and session counts.
func (g *Gateway) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok connections=%d sessions=%d\n", g.Count(), len(g.lobby.List()))
}

func (g *Gateway) serve(tr transport) {
	c := newConnection(g, gonanoid.Must(connIDLen), tr)

	g.mu.Lock()
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()
	c.log.Info("client connected", zap.Int("total", total))

	if err := g.pool.Submit(c.writePump); err != nil {
		c.log.Error("submit writer", zap.Error(err))
		g.removeConnection(c)
		_ = tr.Close()
		return
	}
	if err := g.pool.Submit(c.readLoop); err != nil {
		c.log.Error("submit worker", zap.Error(err))
		c.close()
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	c.log.Debug("connection removed", zap.Int("total", len(g.connections)))
}

// Count returns the number of open connections.
func (g *Gateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}

// Close disconnects every client and waits for the workers to finish.
func (g *Gateway) Close() {
	g.mu.RLock()
	for _, c := range g.connections {
		_ = c.tr.Close()
	}
	g.mu.RUnlock()

	if err := g.pool.ReleaseTimeout(shutdownTimeout); err != nil {
		g.log.Warn("worker pool release", zap.Error(err))
	}
}

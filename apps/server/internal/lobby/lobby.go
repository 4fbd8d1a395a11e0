package lobby

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"holdem-session/apps/server/internal/table"
	"holdem-session/holdem"
)

const sessionIDLen = 10

var ErrSessionNotFound = errors.New("session not found")

// Lobby maps session ids to tables. Joins and leaves are serialized by mu so
// a session being torn down never receives a new player.
type Lobby struct {
	mu     sync.Mutex
	root   *zap.Logger
	log    *zap.Logger
	cfg    holdem.Config
	tables map[string]*table.Table
	order  []string // creation order

	newID func() (string, error)
}

// SessionInfo describes one live session.
type SessionInfo struct {
	ID     string
	Status table.Status
}

func New(cfg holdem.Config, logger *zap.Logger) *Lobby {
	return &Lobby{
		root:   logger,
		log:    logger.Named("lobby"),
		cfg:    cfg,
		tables: make(map[string]*table.Table),
		newID:  func() (string, error) { return gonanoid.New(sessionIDLen) },
	}
}

// Join seats connID in sessionID, or in the oldest joinable session when
// sessionID is empty. A new session is created when none is joinable.
func (l *Lobby) Join(sessionID, connID, name string, deliver table.DeliverFunc) (*table.Table, uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if sessionID != "" {
		t, ok := l.tables[sessionID]
		if !ok {
			return nil, uuid.Nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		res := t.Join(connID, name, deliver)
		if res.Err != nil {
			return nil, uuid.Nil, res.Err
		}
		return t, res.PlayerID, nil
	}

	for _, id := range l.order {
		t := l.tables[id]
		if !t.Status().Joinable() {
			continue
		}
		res := t.Join(connID, name, deliver)
		if errors.Is(res.Err, holdem.ErrGameFull) || errors.Is(res.Err, table.ErrTableClosed) {
			continue
		}
		if res.Err != nil {
			return nil, uuid.Nil, res.Err
		}
		l.log.Debug("quick join", zap.String("session", id), zap.String("conn", connID))
		return t, res.PlayerID, nil
	}

	t, err := l.createLocked()
	if err != nil {
		return nil, uuid.Nil, err
	}
	res := t.Join(connID, name, deliver)
	if res.Err != nil {
		l.removeLocked(t.ID)
		return nil, uuid.Nil, res.Err
	}
	return t, res.PlayerID, nil
}

func (l *Lobby) createLocked() (*table.Table, error) {
	id, err := l.newID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	if _, exists := l.tables[id]; exists {
		return nil, fmt.Errorf("session id collision: %s", id)
	}
	t, err := table.New(id, l.cfg, l.root)
	if err != nil {
		return nil, err
	}
	l.tables[id] = t
	l.order = append(l.order, id)
	l.log.Info("session created", zap.String("session", id), zap.Int("sessions", len(l.tables)))
	return t, nil
}

// Leave removes connID from sessionID and tears the session down once it is
// empty. It returns the number of players left.
func (l *Lobby) Leave(sessionID, connID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.tables[sessionID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	res := t.Leave(connID)
	if errors.Is(res.Err, table.ErrTableClosed) {
		l.removeLocked(sessionID)
		return 0, res.Err
	}
	if res.Err != nil {
		return 0, res.Err
	}
	if res.Remaining == 0 {
		l.removeLocked(sessionID)
	}
	return res.Remaining, nil
}

func (l *Lobby) removeLocked(id string) {
	t, ok := l.tables[id]
	if !ok {
		return
	}
	t.Stop()
	delete(l.tables, id)
	l.order = lo.Without(l.order, id)
	l.log.Info("session closed", zap.String("session", id), zap.Int("sessions", len(l.tables)))
}

// Get returns a session's table, or nil.
func (l *Lobby) Get(sessionID string) *table.Table {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tables[sessionID]
}

// List returns every live session in creation order.
func (l *Lobby) List() []SessionInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo.Map(l.order, func(id string, _ int) SessionInfo {
		return SessionInfo{ID: id, Status: l.tables[id].Status()}
	})
}

// Close stops every table.
func (l *Lobby) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range l.order {
		l.tables[id].Stop()
	}
	l.log.Info("closed", zap.Int("sessions", len(l.tables)))
	l.tables = make(map[string]*table.Table)
	l.order = nil
}

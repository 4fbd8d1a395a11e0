package table

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"holdem-session/apps/server/internal/codec"
	"holdem-session/holdem"
	"holdem-session/protocol"
)

// DeliverFunc hands a message to one member's connection. It must not block.
type DeliverFunc func(protocol.Message)

// Table owns a single holdem.Game. Every read and write of the game happens
// on the actor goroutine started by New.
type Table struct {
	ID string

	log     *zap.Logger
	game    *holdem.Game
	members map[string]*member // connID -> member
	seq     uint64

	mu       sync.RWMutex
	status   Status
	closed   bool
	stopOnce sync.Once

	// Event channel for actor pattern
	events chan Event
	done   chan struct{}
}

type member struct {
	playerID uuid.UUID
	name     string
	deliver  DeliverFunc
}

// Status is a cheap summary of the game, refreshed after every event.
type Status struct {
	Phase      holdem.Phase
	Players    int
	MaxPlayers int
}

// Joinable reports whether a quick join may place a player here.
func (s Status) Joinable() bool {
	return s.Phase == holdem.PhaseWaiting && s.Players < s.MaxPlayers
}

// EventType 桌子事件类型
type EventType int

const (
	EventJoin EventType = iota
	EventLeave
	EventStart
	EventSnapshot
	EventClose
)

var eventTypeNames = map[EventType]string{
	EventJoin:     "join",
	EventLeave:    "leave",
	EventStart:    "start",
	EventSnapshot: "snapshot",
	EventClose:    "close",
}

func (e EventType) String() string {
	if s, ok := eventTypeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Event represents a message to the table actor
type Event struct {
	Type     EventType
	ConnID   string
	Name     string
	Deliver  DeliverFunc
	Response chan Result
}

// Result is the actor's reply to an Event.
type Result struct {
	PlayerID  uuid.UUID
	Snapshot  holdem.Snapshot
	Remaining int
	Err       error
}

var (
	ErrTableClosed   = errors.New("table closed")
	ErrAlreadyJoined = errors.New("connection already joined")
	ErrNotMember     = errors.New("connection is not seated at this table")
)

// New creates an empty game and starts the actor.
func New(id string, cfg holdem.Config, logger *zap.Logger) (*Table, error) {
	game, err := holdem.NewGame(cfg)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", id, err)
	}
	t := &Table{
		ID:      id,
		log:     logger.Named("table").With(zap.String("session", id)),
		game:    game,
		members: make(map[string]*member),
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
	}
	t.refreshStatus()

	go t.run()

	t.log.Info("created",
		zap.Int("max_players", cfg.MaxPlayers),
		zap.Uint64("small_blind", cfg.SmallBlind),
		zap.Uint64("big_blind", cfg.BigBlind))
	return t, nil
}

// run is the main actor loop
func (t *Table) run() {
	for {
		select {
		case e := <-t.events:
			res := t.handleEvent(e)
			if e.Response != nil {
				e.Response <- res
			}
		case <-t.done:
			t.log.Debug("actor stopped")
			return
		}
	}
}

func (t *Table) handleEvent(e Event) Result {
	var res Result
	switch e.Type {
	case EventJoin:
		res = t.handleJoin(e.ConnID, e.Name, e.Deliver)
	case EventLeave:
		res = t.handleLeave(e.ConnID)
	case EventStart:
		res = t.handleStart(e.ConnID)
	case EventSnapshot:
		res.Snapshot = t.game.Snapshot()
	case EventClose:
		t.Stop()
		return Result{}
	default:
		res.Err = fmt.Errorf("unknown event type: %s", e.Type)
	}
	if res.Err == nil && e.Type != EventSnapshot {
		t.refreshStatus()
	}
	return res
}

func (t *Table) handleJoin(connID, name string, deliver DeliverFunc) Result {
	if _, ok := t.members[connID]; ok {
		return Result{Err: ErrAlreadyJoined}
	}
	id, err := t.game.AddPlayer(name)
	if err != nil {
		t.log.Info("join rejected", zap.String("conn", connID), zap.Error(err))
		return Result{Err: err}
	}
	if deliver == nil {
		deliver = func(protocol.Message) {}
	}
	t.members[connID] = &member{playerID: id, name: name, deliver: deliver}
	deliver(protocol.Welcome(t.ID, id))
	t.log.Info("player joined",
		zap.String("conn", connID),
		zap.String("player", id.String()),
		zap.String("name", name),
		zap.Int("players", t.game.PlayerCount()))

	snap := t.broadcastState()
	return Result{PlayerID: id, Snapshot: snap, Remaining: len(snap.Players)}
}

func (t *Table) handleLeave(connID string) Result {
	m, ok := t.members[connID]
	if !ok {
		return Result{Err: &holdem.LeaveGameError{Kind: holdem.PlayerNotFound}}
	}
	if err := t.game.RemovePlayer(m.playerID); err != nil {
		return Result{Err: err}
	}
	delete(t.members, connID)
	t.log.Info("player left",
		zap.String("conn", connID),
		zap.String("player", m.playerID.String()),
		zap.Int("players", t.game.PlayerCount()))

	snap := t.broadcastState()
	return Result{PlayerID: m.playerID, Snapshot: snap, Remaining: len(snap.Players)}
}

func (t *Table) handleStart(connID string) Result {
	m, ok := t.members[connID]
	if !ok {
		return Result{Err: ErrNotMember}
	}
	if err := t.game.Start(); err != nil {
		t.log.Info("start rejected", zap.String("player", m.playerID.String()), zap.Error(err))
		return Result{Err: err}
	}
	t.log.Info("game started",
		zap.String("player", m.playerID.String()),
		zap.Int("players", t.game.PlayerCount()),
		zap.Int("button", t.game.ButtonIndex()))

	snap := t.broadcastState()
	return Result{PlayerID: m.playerID, Snapshot: snap, Remaining: len(snap.Players)}
}

// broadcastState sends every member its own view of the game.
func (t *Table) broadcastState() holdem.Snapshot {
	snap := t.game.Snapshot()
	seq := t.nextSeq()
	for _, m := range t.members {
		m.deliver(codec.StateMessage(t.ID, seq, snap, m.playerID))
	}
	return snap
}

func (t *Table) nextSeq() uint64 {
	t.seq++
	return t.seq
}

func (t *Table) refreshStatus() {
	s := Status{
		Phase:      t.game.Phase(),
		Players:    t.game.PlayerCount(),
		MaxPlayers: t.game.Config().MaxPlayers,
	}
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// SubmitEvent sends an event to the actor and waits for its result.
func (t *Table) SubmitEvent(e Event) Result {
	if e.Response == nil {
		e.Response = make(chan Result, 1)
	}
	if t.IsClosed() {
		return Result{Err: ErrTableClosed}
	}

	select {
	case t.events <- e:
	case <-t.done:
		return Result{Err: ErrTableClosed}
	}

	select {
	case res := <-e.Response:
		return res
	case <-t.done:
		// Close replies after stopping, so prefer its answer if it raced.
		select {
		case res := <-e.Response:
			return res
		default:
		}
		if e.Type == EventClose {
			return Result{}
		}
		return Result{Err: ErrTableClosed}
	}
}

func (t *Table) Join(connID, name string, deliver DeliverFunc) Result {
	return t.SubmitEvent(Event{Type: EventJoin, ConnID: connID, Name: name, Deliver: deliver})
}

func (t *Table) Leave(connID string) Result {
	return t.SubmitEvent(Event{Type: EventLeave, ConnID: connID})
}

func (t *Table) Start(connID string) Result {
	return t.SubmitEvent(Event{Type: EventStart, ConnID: connID})
}

// Snapshot returns current game state, read on the actor goroutine.
func (t *Table) Snapshot() (holdem.Snapshot, error) {
	res := t.SubmitEvent(Event{Type: EventSnapshot})
	return res.Snapshot, res.Err
}

// Close asks the actor to stop after the events queued before it.
func (t *Table) Close() {
	t.SubmitEvent(Event{Type: EventClose})
}

// Stop closes the table immediately. It is safe to call more than once.
func (t *Table) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

func (t *Table) IsClosed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}

func (t *Table) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

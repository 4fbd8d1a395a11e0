package holdem

import (
	"github.com/google/uuid"
)

// Game is a single Texas Hold'em session: its seats and phase machine.
//
// Game does no locking of its own. It expects exactly one owner, usually a
// table actor, to call every method.
type Game struct {
	cfg Config

	// seats, in join order
	players []*Player
	issued  map[uuid.UUID]struct{}
	newID   func() uuid.UUID

	// hand state
	phase       Phase
	buttonIndex int
	turnIndex   int
	smallBlind  uint64
	bigBlind    uint64
	pot         uint64
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		cfg:        cfg,
		players:    make([]*Player, 0, cfg.MaxPlayers),
		issued:     make(map[uuid.UUID]struct{}, cfg.MaxPlayers),
		newID:      uuid.New,
		phase:      PhaseWaiting,
		smallBlind: cfg.SmallBlind,
		bigBlind:   cfg.BigBlind,
	}, nil
}

// NewGameWithCreator creates a game seating its founding player at index 0,
// which is also the initial button and turn.
func NewGameWithCreator(cfg Config, creatorName string) (*Game, uuid.UUID, error) {
	g, err := NewGame(cfg)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id, err := g.AddPlayer(creatorName)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return g, id, nil
}

// AddPlayer seats a new player at the end of the join order and returns the
// player's identity.
func (g *Game) AddPlayer(name string) (uuid.UUID, error) {
	if len(g.players) >= g.cfg.MaxPlayers {
		return uuid.Nil, ErrGameFull
	}
	id := g.allocateID()
	g.players = append(g.players, newPlayer(id, name, g.cfg.StartingStack))
	return id, nil
}

// allocateID never hands out an identity this game has issued before, even
// one whose player has since left.
func (g *Game) allocateID() uuid.UUID {
	for {
		id := g.newID()
		if id == uuid.Nil {
			continue
		}
		if _, dup := g.issued[id]; dup {
			continue
		}
		g.issued[id] = struct{}{}
		return id
	}
}

// RemovePlayer removes exactly one player, preserving the order of the rest,
// and keeps the button and turn pointing at valid seats.
func (g *Game) RemovePlayer(id uuid.UUID) error {
	idx := g.indexOf(id)
	if idx < 0 {
		return &LeaveGameError{Kind: PlayerNotFound, PlayerID: id}
	}

	copy(g.players[idx:], g.players[idx+1:])
	g.players[len(g.players)-1] = nil
	g.players = g.players[:len(g.players)-1]

	g.buttonIndex = reclampIndex(g.buttonIndex, idx, len(g.players))
	g.turnIndex = reclampIndex(g.turnIndex, idx, len(g.players))
	return nil
}

// reclampIndex adjusts a seat index after the seat at removed was deleted
// from a list that now has n entries. Indices after the removed seat shift
// down so they keep pointing at the same player; an index left past the end
// wraps to the first seat.
func reclampIndex(cur, removed, n int) int {
	if n == 0 {
		return 0
	}
	if cur > removed {
		cur--
	}
	if cur >= n {
		cur = 0
	}
	return cur
}

// Start moves a waiting game with enough players to PreFlop.
func (g *Game) Start() error {
	if g.phase != PhaseWaiting {
		return ErrGameInProgress
	}
	if len(g.players) < g.cfg.MinPlayers {
		return ErrInsufficientPlayers
	}
	// TODO: post blinds and deal hole cards once betting rounds exist.
	g.turnIndex = g.buttonIndex
	g.phase = PhasePreFlop
	return nil
}

func (g *Game) indexOf(id uuid.UUID) int {
	for i, p := range g.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (g *Game) Config() Config   { return g.cfg }
func (g *Game) Phase() Phase     { return g.phase }
func (g *Game) PlayerCount() int { return len(g.players) }
func (g *Game) Full() bool       { return len(g.players) >= g.cfg.MaxPlayers }
func (g *Game) Pot() uint64      { return g.pot }
func (g *Game) ButtonIndex() int { return g.buttonIndex }
func (g *Game) TurnIndex() int   { return g.turnIndex }

func (g *Game) Blinds() (small, big uint64) { return g.smallBlind, g.bigBlind }

// Player returns the seated player with the given id, or nil.
func (g *Game) Player(id uuid.UUID) *Player {
	if idx := g.indexOf(id); idx >= 0 {
		return g.players[idx]
	}
	return nil
}

// Players returns the seats in join order. The slice is a copy; the players
// are not.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

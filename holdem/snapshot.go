package holdem

import (
	"github.com/google/uuid"

	"holdem-session/card"
)

type PlayerSnapshot struct {
	ID         uuid.UUID
	Name       string
	Chips      uint64
	Bet        uint64
	Folded     bool
	SittingOut bool
	Hand       [2]card.Card
}

type Snapshot struct {
	Phase Phase

	ButtonIndex int
	TurnIndex   int

	SmallBlind uint64
	BigBlind   uint64
	Pot        uint64

	MaxPlayers int
	Players    []PlayerSnapshot
}

// Snapshot is a deep copy of the game, safe to hand to other goroutines.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:       g.phase,
		ButtonIndex: g.buttonIndex,
		TurnIndex:   g.turnIndex,
		SmallBlind:  g.smallBlind,
		BigBlind:    g.bigBlind,
		Pot:         g.pot,
		MaxPlayers:  g.cfg.MaxPlayers,
		Players:     make([]PlayerSnapshot, 0, len(g.players)),
	}
	for _, p := range g.players {
		s.Players = append(s.Players, PlayerSnapshot{
			ID:         p.ID,
			Name:       p.name,
			Chips:      p.chips,
			Bet:        p.bet,
			Folded:     p.folded,
			SittingOut: p.sittingOut,
			Hand:       p.hand,
		})
	}
	return s
}

// PlayerIndex returns the join-order index of id, or -1.
func (s Snapshot) PlayerIndex(id uuid.UUID) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Full reports whether every seat is taken.
func (s Snapshot) Full() bool { return len(s.Players) >= s.MaxPlayers }

package holdem

import (
	"github.com/google/uuid"

	"holdem-session/card"
)

// Player is one seat's state. Only the owning Game mutates it.
type Player struct {
	ID   uuid.UUID
	name string

	chips uint64
	bet   uint64

	folded     bool
	sittingOut bool

	hand [2]card.Card
}

// NewPlayer creates a player with a fresh identity and the default stack.
func NewPlayer(name string) *Player {
	return newPlayer(uuid.New(), name, DefaultStartingStack)
}

// newPlayer starts a player sitting out with the placeholder hand; they opt
// in before a dealt round.
func newPlayer(id uuid.UUID, name string, stack uint64) *Player {
	return &Player{
		ID:         id,
		name:       name,
		chips:      stack,
		sittingOut: true,
		hand:       placeholderHand,
	}
}

func (p *Player) Name() string       { return p.name }
func (p *Player) Chips() uint64      { return p.chips }
func (p *Player) Bet() uint64        { return p.bet }
func (p *Player) Folded() bool       { return p.folded }
func (p *Player) SittingOut() bool   { return p.sittingOut }
func (p *Player) Hand() [2]card.Card { return p.hand }

// HandList returns the hand as a CardList for encoding.
func (p *Player) HandList() card.CardList { return card.CardList{p.hand[0], p.hand[1]} }

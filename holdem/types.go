package holdem

import "holdem-session/card"

// Texas Hold'em table defaults.
const (
	MaxPlayers           = 8
	DefaultMinPlayers    = 2
	DefaultSmallBlind    = uint64(1)
	DefaultBigBlind      = uint64(2)
	DefaultStartingStack = uint64(250)
)

// Phase 游戏阶段
type Phase byte

const (
	PhaseWaiting  Phase = 0
	PhasePreFlop  Phase = 1
	PhaseFlop     Phase = 2
	PhaseTurn     Phase = 3
	PhaseRiver    Phase = 4
	PhaseShowdown Phase = 5
)

var PhaseDictionary = map[Phase]string{
	PhaseWaiting:  "waiting",
	PhasePreFlop:  "preflop",
	PhaseFlop:     "flop",
	PhaseTurn:     "turn",
	PhaseRiver:    "river",
	PhaseShowdown: "showdown",
}

func (p Phase) String() string {
	if s, ok := PhaseDictionary[p]; ok {
		return s
	}
	return "unknown"
}

// placeholderHand is what every player holds until dealing exists.
var placeholderHand = [2]card.Card{card.CardSpadeA, card.CardClubA}

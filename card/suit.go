package card

type Suit byte

const (
	Spade   Suit = iota // ♠
	Club                // ♣
	Diamond             // ♦
	Heart               // ♥
)

// Suits lists every suit in deck order.
var Suits = []Suit{Spade, Club, Diamond, Heart}

func (s Suit) String() string {
	switch s {
	case Spade:
		return "♠"
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	case Heart:
		return "♥"
	}
	return "?"
}

// Letter returns the single-letter form used by ParseCard.
func (s Suit) Letter() byte {
	switch s {
	case Spade:
		return 's'
	case Club:
		return 'c'
	case Diamond:
		return 'd'
	case Heart:
		return 'h'
	}
	return '?'
}

func (s Suit) valid() bool { return s <= Heart }

package card

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCard = errors.New("invalid card")

// Card 牌枚举
//
// 编码规则:
// - 高4位: 花色 (0:Spade, 1:Club, 2:Diamond, 3:Heart)
// - 低4位: 点数 (2..9, 10:T, 11:J, 12:Q, 13:K, 14:A)
type Card byte

// NewCard builds a card from a face value and suit. Value 1 is accepted as a
// low-indexed Ace and stored as 14 so that an Ace has one representation.
func NewCard(value int, suit Suit) (Card, error) {
	if value == lowAce {
		value = ValueAce
	}
	if value < MinValue || value > MaxValue {
		return CardInvalid, fmt.Errorf("%w: value %d out of range [1,14]", ErrInvalidCard, value)
	}
	if !suit.valid() {
		return CardInvalid, fmt.Errorf("%w: unknown suit %d", ErrInvalidCard, suit)
	}
	return Card(byte(suit)<<4 | byte(value)), nil
}

// MustCard is NewCard for constants and tests.
func MustCard(value int, suit Suit) Card {
	c, err := NewCard(value, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) Valid() bool {
	if c == CardInvalid || c == CardRear {
		return false
	}
	v := byte(c & 0x0F)
	return v >= MinValue && v <= MaxValue && c.Suit().valid()
}

// Value 牌面值 2-14 (A=14)
func (c Card) Value() int {
	if !c.Valid() {
		return 0
	}
	return int(c & 0x0F)
}

// Rank 获取 ace-low 索引 1-13 (A=1, K=13)
func (c Card) Rank() int {
	v := c.Value()
	if v == ValueAce {
		return lowAce
	}
	return v
}

func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Value() == ValueAce
}

func (c Card) String() string {
	if c == CardRear {
		return "Rear"
	}
	if !c.Valid() {
		return "Invalid"
	}
	return valueString(c.Value()) + c.Suit().String()
}

// Short returns the two-character form understood by ParseCard, e.g. "As".
func (c Card) Short() string {
	if !c.Valid() {
		return "??"
	}
	return valueString(c.Value()) + string(c.Suit().Letter())
}

func valueString(v int) string {
	switch v {
	case 10:
		return "T"
	case ValueJack:
		return "J"
	case ValueQueen:
		return "Q"
	case ValueKing:
		return "K"
	case ValueAce:
		return "A"
	default:
		return fmt.Sprintf("%d", v)
	}
}

// ParseCard 将字符串 (如 "As", "Td", "10h") 转换为 Card
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return CardInvalid, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 's', 'S':
		suit = Spade
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	case 'h', 'H':
		suit = Heart
	default:
		return CardInvalid, fmt.Errorf("%w: suit %q", ErrInvalidCard, s[len(s)-1])
	}

	var value int
	switch rank := strings.ToUpper(s[:len(s)-1]); rank {
	case "A":
		value = ValueAce
	case "K":
		value = ValueKing
	case "Q":
		value = ValueQueen
	case "J":
		value = ValueJack
	case "T", "10":
		value = 10
	case "2", "3", "4", "5", "6", "7", "8", "9":
		value = int(rank[0] - '0')
	default:
		return CardInvalid, fmt.Errorf("%w: rank %q", ErrInvalidCard, rank)
	}
	return NewCard(value, suit)
}

package card

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck returns a fresh, unshuffled 52-card deck. Cards are ordered
// suit-major (Spade, Club, Diamond, Heart) and by value 2..A within a suit.
// The order is stable but carries no meaning; shuffling is up to the caller.
func NewDeck() CardList {
	deck := make(CardList, 0, DeckSize)
	for _, s := range Suits {
		for v := MinValue; v <= MaxValue; v++ {
			deck = append(deck, Card(byte(s)<<4|byte(v)))
		}
	}
	return deck
}

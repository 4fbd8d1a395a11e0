package card

const (
	CardInvalid Card = 0
	CardRear    Card = 0xFF
)

const (
	MinValue = 2
	MaxValue = 14 // Ace

	ValueJack  = 11
	ValueQueen = 12
	ValueKing  = 13
	ValueAce   = 14

	// lowAce is accepted by NewCard and folded into ValueAce.
	lowAce = 1
)

// Spade 黑桃
const (
	CardSpade2 Card = iota + 0x02
	CardSpade3
	CardSpade4
	CardSpade5
	CardSpade6
	CardSpade7
	CardSpade8
	CardSpade9
	CardSpadeT
	CardSpadeJ
	CardSpadeQ
	CardSpadeK
	CardSpadeA
)

// Club 梅花
const (
	CardClub2 Card = iota + 0x12
	CardClub3
	CardClub4
	CardClub5
	CardClub6
	CardClub7
	CardClub8
	CardClub9
	CardClubT
	CardClubJ
	CardClubQ
	CardClubK
	CardClubA
)

// Diamond 方块
const (
	CardDiamond2 Card = iota + 0x22
	CardDiamond3
	CardDiamond4
	CardDiamond5
	CardDiamond6
	CardDiamond7
	CardDiamond8
	CardDiamond9
	CardDiamondT
	CardDiamondJ
	CardDiamondQ
	CardDiamondK
	CardDiamondA
)

// Heart 红心
const (
	CardHeart2 Card = iota + 0x32
	CardHeart3
	CardHeart4
	CardHeart5
	CardHeart6
	CardHeart7
	CardHeart8
	CardHeart9
	CardHeartT
	CardHeartJ
	CardHeartQ
	CardHeartK
	CardHeartA
)

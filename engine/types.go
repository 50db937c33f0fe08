package engine

// Suit constants — packed into upper 4 bits of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
	SuitJoker    uint8 = 4
)

// Rank identity constants — packed into lower 4 bits of Card.
// These are fixed identities; comparison values are derived per hand
// from the declarer's level (see Card.Value).
const (
	RankTwo        uint8 = 0
	RankThree      uint8 = 1
	RankFour       uint8 = 2
	RankFive       uint8 = 3
	RankSix        uint8 = 4
	RankSeven      uint8 = 5
	RankEight      uint8 = 6
	RankNine       uint8 = 7
	RankTen        uint8 = 8
	RankJack       uint8 = 9
	RankQueen      uint8 = 10
	RankKing       uint8 = 11
	RankAce        uint8 = 12
	RankBlackJoker uint8 = 13
	RankRedJoker   uint8 = 14
)

// Derived value constants. The level card is elevated above the Ace but
// below both jokers for the duration of one hand.
const (
	LevelCardValue  uint8 = 15
	BlackJokerValue uint8 = 16
	RedJokerValue   uint8 = 17
	MaxCardValue    uint8 = 17
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank identity.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank identity bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsJoker reports whether the card is one of the four jokers.
func (c Card) IsJoker() bool { return c.Suit() == SuitJoker }

// Value returns the comparison value of the card for a hand played at the
// given level (the declarer team's level, 2–14):
//   - Black Joker → 16, Red Joker → 17
//   - the rank whose standard value equals level → 15 (the level card)
//   - everything else → standard rank order 2..14
//
// The value is derived, never stored: the same Card compares differently
// in hands played at different levels.
func (c Card) Value(level uint8) uint8 {
	switch c.Rank() {
	case RankBlackJoker:
		return BlackJokerValue
	case RankRedJoker:
		return RedJokerValue
	}
	base := c.Rank() + 2 // RankTwo=0 → 2 ... RankAce=12 → 14
	if base == level {
		return LevelCardValue
	}
	return base
}

// IsWild reports whether the card is the wild card for a hand at the given
// level: the Hearts instance of the level rank. Wildness is tracked for
// display and bookkeeping only — neither the classifier nor the legality
// checker substitutes wild cards into other combinations.
func (c Card) IsWild(level uint8) bool {
	return !c.IsJoker() && c.Suit() == SuitHearts && c.Rank()+2 == level
}

var rankNames = [15]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "10",
	"J", "Q", "K", "A", "BJ", "RJ",
}

var suitNames = [5]string{"Hearts", "Diamonds", "Clubs", "Spades", "Joker"}

// RankName returns the display name of the card's rank identity.
func (c Card) RankName() string {
	if r := c.Rank(); r < uint8(len(rankNames)) {
		return rankNames[r]
	}
	return "?"
}

// SuitName returns the display name of the card's suit.
func (c Card) SuitName() string {
	if s := c.Suit(); s < uint8(len(suitNames)) {
		return suitNames[s]
	}
	return "?"
}

// String renders the card compactly, e.g. "A♦", "10♠", "RJ".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	if c.IsJoker() {
		return c.RankName()
	}
	glyphs := [4]string{"♥", "♦", "♣", "♠"}
	return c.RankName() + glyphs[c.Suit()]
}

// ---------------------------------------------------------------------------
// Combination kinds
// ---------------------------------------------------------------------------

// ComboKind identifies a recognized play shape.
type ComboKind uint8

const (
	KindInvalid       ComboKind = iota // 0 — unrecognized shape
	KindSingle                         // 1
	KindPair                           // 2
	KindTriple                         // 3
	KindFullHouse                      // 4
	KindStraight                       // 5
	KindTube                           // 6 — three consecutive pairs
	KindPlate                          // 7 — two consecutive triples
	KindBomb                           // 8 — 4+ of a kind
	KindStraightFlush                  // 9
	KindJokerBomb                      // 10 — one black + one red joker
)

var kindNames = [11]string{
	"invalid", "single", "pair", "triple", "full_house", "straight",
	"tube", "plate", "bomb", "straight_flush", "joker_bomb",
}

func (k ComboKind) String() string {
	if k < ComboKind(len(kindNames)) {
		return kindNames[k]
	}
	return "unknown"
}

// IsBomb reports whether the kind belongs to the bomb family, which beats
// every non-bomb kind regardless of rank.
func (k ComboKind) IsBomb() bool {
	return k == KindBomb || k == KindStraightFlush || k == KindJokerBomb
}

// Combo is the classification of a set of cards: a kind, a rank comparable
// within that kind (and across the whole bomb family), and the card count.
type Combo struct {
	Kind ComboKind
	Rank int16
	Size uint8
}

// Valid reports whether the classification recognized a legal shape.
func (c Combo) Valid() bool { return c.Kind != KindInvalid }

// ---------------------------------------------------------------------------
// Turn outcomes
// ---------------------------------------------------------------------------

// TurnStatus is the result of submitting one play or pass to the engine.
type TurnStatus uint8

const (
	StatusInvalid  TurnStatus = iota // 0 — play rejected, same player retries
	StatusPlayed                     // 1 — play accepted
	StatusPass                       // 2 — pass recorded
	StatusTrickWon                   // 3 — third consecutive pass closed the trick
	StatusHandWon                    // 4 — play accepted and emptied the hand
)

var statusNames = [5]string{"INVALID", "PLAYED", "PASS", "TRICK_WON", "HAND_WON"}

func (s TurnStatus) String() string {
	if s < TurnStatus(len(statusNames)) {
		return statusNames[s]
	}
	return "unknown"
}

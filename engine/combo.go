package engine

// Rank formula bases. Ranks are comparable within one kind; the bomb family
// is additionally totally ordered across kinds because every bomb formula
// lands in a disjoint, increasing band (values are always < 100).
const (
	rankBasePair          = 20
	rankBaseTriple        = 40
	rankBaseFullHouse     = 60
	rankBaseStraight      = 80
	rankBaseTube          = 100
	rankBasePlate         = 120
	rankMultiplierBigBomb = 100 // bombs of 6+ cards: 100·n + value
	rankBaseBomb4         = 300
	rankBaseBomb5         = 400
	rankBaseStraightFlush = 500
	rankJokerBomb         = 1000
)

// shape is the signature a play is classified from: per-value counts plus
// the straight/flush flags. Derived once, consulted by every shape check.
type shape struct {
	n        uint8                  // card count
	counts   [MaxCardValue + 1]uint8 // value → multiplicity
	values   [MaxCardValue + 1]uint8 // distinct values, ascending
	distinct uint8
	straight bool // distinct == n and max-min == n-1
	flush    bool // all cards share one suit
}

func makeShape(cards []Card, level uint8) shape {
	var s shape
	s.n = uint8(len(cards))
	if s.n == 0 {
		return s
	}
	s.flush = true
	firstSuit := cards[0].Suit()
	for _, c := range cards {
		s.counts[c.Value(level)]++
		if c.Suit() != firstSuit {
			s.flush = false
		}
	}
	for v := uint8(2); v <= MaxCardValue; v++ {
		if s.counts[v] > 0 {
			s.values[s.distinct] = v
			s.distinct++
		}
	}
	min, max := s.values[0], s.values[s.distinct-1]
	s.straight = s.distinct == s.n && max-min == s.n-1
	return s
}

func (s *shape) min() uint8 { return s.values[0] }
func (s *shape) max() uint8 { return s.values[s.distinct-1] }

// Classify maps a multiset of cards to its combination kind, comparable
// rank, and size, for a hand played at the given level. Pure and
// order-insensitive; anything not matching a recognized shape (including an
// empty input) classifies as KindInvalid.
//
// The checks run in strict priority order: the bomb family is recognized
// before the weaker shapes so that, e.g., four of a kind can never fall
// through to a lesser classification.
func Classify(cards []Card, level uint8) Combo {
	if len(cards) == 0 {
		return Combo{}
	}
	s := makeShape(cards, level)

	// Joker bomb: exactly the black and red joker values.
	if s.n == 2 && s.counts[BlackJokerValue] == 1 && s.counts[RedJokerValue] == 1 {
		return Combo{Kind: KindJokerBomb, Rank: rankJokerBomb, Size: 2}
	}

	// Straight flush outranks the plain n-of-a-kind bombs of sizes 4 and 5.
	if s.n == 5 && s.straight && s.flush {
		return Combo{Kind: KindStraightFlush, Rank: rankBaseStraightFlush + int16(s.max()), Size: 5}
	}

	// Bomb: 4+ cards of a single value.
	if s.n >= 4 && s.distinct == 1 {
		v := int16(s.min())
		var base int16
		switch s.n {
		case 4:
			base = rankBaseBomb4
		case 5:
			base = rankBaseBomb5
		default: // 6+ cards: size dominates value by construction
			base = int16(s.n) * rankMultiplierBigBomb
		}
		return Combo{Kind: KindBomb, Rank: base + v, Size: s.n}
	}

	switch {
	case s.n == 1:
		return Combo{Kind: KindSingle, Rank: int16(s.min()), Size: 1}
	case s.n == 2 && s.distinct == 1:
		return Combo{Kind: KindPair, Rank: rankBasePair + int16(s.min()), Size: 2}
	case s.n == 3 && s.distinct == 1:
		return Combo{Kind: KindTriple, Rank: rankBaseTriple + int16(s.min()), Size: 3}
	case s.n == 5 && s.distinct == 2:
		// Full house: count multiset {2,3}. Rank follows the triple.
		for _, v := range s.values[:2] {
			if s.counts[v] == 3 {
				return Combo{Kind: KindFullHouse, Rank: rankBaseFullHouse + int16(v), Size: 5}
			}
		}
	case s.n == 5 && s.straight:
		return Combo{Kind: KindStraight, Rank: rankBaseStraight + int16(s.max()), Size: 5}
	case s.n == 6 && s.distinct == 3:
		// Tube: three consecutive pairs.
		if s.counts[s.values[0]] == 2 && s.counts[s.values[1]] == 2 && s.counts[s.values[2]] == 2 &&
			s.values[2]-s.values[0] == 2 {
			return Combo{Kind: KindTube, Rank: rankBaseTube + int16(s.max()), Size: 6}
		}
	case s.n == 6 && s.distinct == 2:
		// Plate: two consecutive triples.
		if s.counts[s.values[0]] == 3 && s.counts[s.values[1]] == 3 &&
			s.values[1]-s.values[0] == 1 {
			return Combo{Kind: KindPlate, Rank: rankBasePlate + int16(s.max()), Size: 6}
		}
	}

	return Combo{}
}

package engine

import "testing"

// TestCardPacking verifies suit/rank round-trip through the packed byte.
func TestCardPacking(t *testing.T) {
	for suit := uint8(SuitHearts); suit <= SuitSpades; suit++ {
		for rank := RankTwo; rank <= RankAce; rank++ {
			c := NewCard(suit, rank)
			if c.Suit() != suit || c.Rank() != rank {
				t.Errorf("round trip failed for suit=%d rank=%d: got suit=%d rank=%d",
					suit, rank, c.Suit(), c.Rank())
			}
		}
	}
}

// TestValueStandardRanks: at level 5, every rank keeps its standard value
// except the Five, which is elevated to the level card value.
func TestValueStandardRanks(t *testing.T) {
	const level = 5
	for rank := RankTwo; rank <= RankAce; rank++ {
		c := NewCard(SuitClubs, rank)
		want := rank + 2
		if want == level {
			want = LevelCardValue
		}
		if got := c.Value(level); got != want {
			t.Errorf("rank %s at level %d: value = %d, want %d", c.RankName(), level, got, want)
		}
	}
}

// TestValueJokers: jokers hold the two top values regardless of level.
func TestValueJokers(t *testing.T) {
	bj := NewCard(SuitJoker, RankBlackJoker)
	rj := NewCard(SuitJoker, RankRedJoker)
	for _, level := range []uint8{2, 7, 14} {
		if bj.Value(level) != BlackJokerValue {
			t.Errorf("black joker value at level %d = %d, want %d", level, bj.Value(level), BlackJokerValue)
		}
		if rj.Value(level) != RedJokerValue {
			t.Errorf("red joker value at level %d = %d, want %d", level, rj.Value(level), RedJokerValue)
		}
	}
}

// TestIsWild: only the Hearts instance of the level rank is wild.
func TestIsWild(t *testing.T) {
	const level = 8
	if !NewCard(SuitHearts, RankEight).IsWild(level) {
		t.Error("Hearts Eight should be wild at level 8")
	}
	if NewCard(SuitDiamonds, RankEight).IsWild(level) {
		t.Error("Diamonds Eight should not be wild")
	}
	if NewCard(SuitHearts, RankNine).IsWild(level) {
		t.Error("Hearts Nine should not be wild at level 8")
	}
	if NewCard(SuitJoker, RankRedJoker).IsWild(level) {
		t.Error("jokers are never wild")
	}
}

// TestKindIsBomb: exactly the bomb family reports IsBomb.
func TestKindIsBomb(t *testing.T) {
	bombs := []ComboKind{KindBomb, KindStraightFlush, KindJokerBomb}
	for _, k := range bombs {
		if !k.IsBomb() {
			t.Errorf("%v should be a bomb", k)
		}
	}
	others := []ComboKind{KindInvalid, KindSingle, KindPair, KindTriple, KindFullHouse, KindStraight, KindTube, KindPlate}
	for _, k := range others {
		if k.IsBomb() {
			t.Errorf("%v should not be a bomb", k)
		}
	}
}

package engine

import "testing"

// newDealtMatch returns a match with one hand dealt from a fixed seed.
func newDealtMatch(seed uint64) GameState {
	g := NewMatch(seed, DefaultRules())
	g.DealHand()
	return g
}

// scenario builds a match at level 2 with explicit small hands and an empty
// table; seat 0 is to act.
func scenario(hands [NumPlayers][]Card) GameState {
	g := NewMatch(1, DefaultRules())
	g.HandLevel = 2
	for seat := uint8(0); seat < NumPlayers; seat++ {
		g.LoadHand(seat, hands[seat])
	}
	g.CurrentPlayer = 0
	g.TrickLeader = 0
	return g
}

// TestDealHand: 27 cards per seat, deck exhausted, every card identity
// dealt exactly twice, hands sorted ascending by per-hand value.
func TestDealHand(t *testing.T) {
	g := newDealtMatch(42)

	if g.DeckLen != 0 {
		t.Errorf("deck should be exhausted, %d cards remain", g.DeckLen)
	}
	counts := make(map[Card]int)
	for seat := range g.Players {
		p := &g.Players[seat]
		if p.HandLen != CardsPerPlayer {
			t.Errorf("seat %d has %d cards, want %d", seat, p.HandLen, CardsPerPlayer)
		}
		for i := uint8(1); i < p.HandLen; i++ {
			if p.Hand[i-1].Value(g.HandLevel) > p.Hand[i].Value(g.HandLevel) {
				t.Errorf("seat %d hand not sorted at index %d", seat, i)
			}
		}
		for _, c := range p.HandSlice() {
			counts[c]++
		}
	}
	if len(counts) != 54 {
		t.Errorf("expected 54 distinct card identities, got %d", len(counts))
	}
	for c, n := range counts {
		if n != 2 {
			t.Errorf("card %v dealt %d times, want 2", c, n)
		}
	}
}

// TestDealHandUsesDeclarerLevel: the hand level tracks the declarer team's
// level, not the other team's.
func TestDealHandUsesDeclarerLevel(t *testing.T) {
	g := NewMatch(3, DefaultRules())
	g.Levels = [NumTeams]uint8{9, 4}
	g.DeclarerTeam = 0
	g.DealHand()
	if g.HandLevel != 9 {
		t.Errorf("hand level = %d, want 9", g.HandLevel)
	}
	g.DeclarerTeam = 1
	g.DealHand()
	if g.HandLevel != 4 {
		t.Errorf("hand level = %d, want 4", g.HandLevel)
	}
}

// TestSubmitTurnPlayAndPassCycle: a play followed by three passes closes
// the trick and returns the lead to the trick leader.
func TestSubmitTurnPlayAndPassCycle(t *testing.T) {
	g := scenario([NumPlayers][]Card{
		{NewCard(SuitSpades, rk(5)), NewCard(SuitSpades, rk(9))},
		{NewCard(SuitHearts, rk(3))},
		{NewCard(SuitClubs, rk(3))},
		{NewCard(SuitDiamonds, rk(3))},
	})

	if got := g.SubmitTurn(0, hand(NewCard(SuitSpades, rk(5)))); got != StatusPlayed {
		t.Fatalf("play: got %v, want PLAYED", got)
	}
	if g.CurrentPlayer != 1 {
		t.Fatalf("turn should advance to seat 1, at %d", g.CurrentPlayer)
	}
	if got := g.SubmitTurn(1, nil); got != StatusPass {
		t.Fatalf("first pass: got %v", got)
	}
	if got := g.SubmitTurn(2, nil); got != StatusPass {
		t.Fatalf("second pass: got %v", got)
	}
	if got := g.SubmitTurn(3, nil); got != StatusTrickWon {
		t.Fatalf("third pass: got %v, want TRICK_WON", got)
	}
	if g.TrickOpen() {
		t.Error("table should be clear after trick close")
	}
	if g.Passes != 0 {
		t.Errorf("pass counter should reset, got %d", g.Passes)
	}
	if g.CurrentPlayer != 0 {
		t.Errorf("lead should return to trick leader, at seat %d", g.CurrentPlayer)
	}
}

// TestSubmitTurnInvalidKeepsState: a rejected play changes nothing and the
// same seat stays to act.
func TestSubmitTurnInvalidKeepsState(t *testing.T) {
	g := scenario([NumPlayers][]Card{
		{NewCard(SuitSpades, rk(5))},
		{NewCard(SuitHearts, rk(4)), NewCard(SuitHearts, rk(9))},
		{NewCard(SuitClubs, rk(3))},
		{NewCard(SuitDiamonds, rk(3))},
	})
	g.SubmitTurn(0, hand(NewCard(SuitSpades, rk(5))))

	before := g.Save()
	if got := g.SubmitTurn(1, hand(NewCard(SuitHearts, rk(4)))); got != StatusInvalid {
		t.Fatalf("got %v, want INVALID", got)
	}
	if g != GameState(before) {
		t.Error("state changed on a rejected play")
	}
	if g.CurrentPlayer != 1 {
		t.Errorf("seat 1 should be re-prompted, current is %d", g.CurrentPlayer)
	}
	// The same seat can then offer a legal play.
	if got := g.SubmitTurn(1, hand(NewCard(SuitHearts, rk(9)))); got != StatusPlayed {
		t.Fatalf("legal retry: got %v", got)
	}
}

// TestSubmitTurnRemovesExactCards: only the named cards leave the hand,
// including one of two identical deck copies.
func TestSubmitTurnRemovesExactCards(t *testing.T) {
	dup := NewCard(SuitSpades, rk(6))
	g := scenario([NumPlayers][]Card{
		{dup, dup, NewCard(SuitHearts, rk(10))},
		{NewCard(SuitHearts, rk(3))},
		{NewCard(SuitClubs, rk(3))},
		{NewCard(SuitDiamonds, rk(3))},
	})

	if got := g.SubmitTurn(0, hand(dup)); got != StatusPlayed {
		t.Fatalf("got %v", got)
	}
	p := &g.Players[0]
	if p.HandLen != 2 {
		t.Fatalf("hand length = %d, want 2", p.HandLen)
	}
	remaining := map[Card]int{}
	for _, c := range p.HandSlice() {
		remaining[c]++
	}
	if remaining[dup] != 1 {
		t.Errorf("exactly one copy of %v should remain, got %d", dup, remaining[dup])
	}
}

// TestHandWonAndRotationSkip: an emptied seat emits HAND_WON, joins the
// finish order, and is skipped in later rotation.
func TestHandWonAndRotationSkip(t *testing.T) {
	g := scenario([NumPlayers][]Card{
		{NewCard(SuitSpades, rk(5))},
		{NewCard(SuitHearts, rk(6)), NewCard(SuitHearts, rk(9))},
		{NewCard(SuitClubs, rk(7)), NewCard(SuitClubs, rk(10))},
		{NewCard(SuitDiamonds, rk(8)), NewCard(SuitDiamonds, rk(11))},
	})

	if got := g.SubmitTurn(0, hand(NewCard(SuitSpades, rk(5)))); got != StatusHandWon {
		t.Fatalf("got %v, want HAND_WON", got)
	}
	if !g.Players[0].Finished || g.NumFinished != 1 || g.FinishOrder[0] != 0 {
		t.Fatal("seat 0 should be recorded as first finisher")
	}

	// Seats 1, 2, 3 each act; the rotation must never return to seat 0.
	g.SubmitTurn(1, hand(NewCard(SuitHearts, rk(6))))
	if g.CurrentPlayer != 2 {
		t.Fatalf("expected seat 2, got %d", g.CurrentPlayer)
	}
	g.SubmitTurn(2, hand(NewCard(SuitClubs, rk(7))))
	if g.CurrentPlayer != 3 {
		t.Fatalf("expected seat 3, got %d", g.CurrentPlayer)
	}
	g.SubmitTurn(3, hand(NewCard(SuitDiamonds, rk(8))))
	if g.CurrentPlayer != 1 {
		t.Fatalf("rotation should skip finished seat 0, got %d", g.CurrentPlayer)
	}
}

// TestTrickCloseWithFinishedLeader: when the trick leader has finished, the
// lead falls to the next active seat after them.
func TestTrickCloseWithFinishedLeader(t *testing.T) {
	g := scenario([NumPlayers][]Card{
		{NewCard(SuitSpades, rk(5))},
		{NewCard(SuitHearts, rk(3)), NewCard(SuitHearts, rk(9))},
		{NewCard(SuitClubs, rk(3)), NewCard(SuitClubs, rk(9))},
		{NewCard(SuitDiamonds, rk(3)), NewCard(SuitDiamonds, rk(9))},
	})

	if got := g.SubmitTurn(0, hand(NewCard(SuitSpades, rk(5)))); got != StatusHandWon {
		t.Fatalf("got %v", got)
	}
	g.SubmitTurn(1, nil)
	g.SubmitTurn(2, nil)
	if got := g.SubmitTurn(3, nil); got != StatusTrickWon {
		t.Fatalf("got %v, want TRICK_WON", got)
	}
	if g.CurrentPlayer != 1 {
		t.Errorf("lead should fall to seat 1 (first active after finished leader 0), got %d", g.CurrentPlayer)
	}
}

// TestFinishOrderCompletion: all four seats emptying produces a full finish
// order and HandComplete.
func TestFinishOrderCompletion(t *testing.T) {
	g := scenario([NumPlayers][]Card{
		{NewCard(SuitSpades, rk(5))},
		{NewCard(SuitHearts, rk(6))},
		{NewCard(SuitClubs, rk(7))},
		{NewCard(SuitDiamonds, rk(8))},
	})

	for _, step := range []struct {
		seat uint8
		card Card
	}{
		{0, NewCard(SuitSpades, rk(5))},
		{1, NewCard(SuitHearts, rk(6))},
		{2, NewCard(SuitClubs, rk(7))},
		{3, NewCard(SuitDiamonds, rk(8))},
	} {
		if got := g.SubmitTurn(step.seat, hand(step.card)); got != StatusHandWon {
			t.Fatalf("seat %d: got %v, want HAND_WON", step.seat, got)
		}
	}
	if !g.HandComplete() {
		t.Error("hand should be complete")
	}
	if g.FinishOrder != [NumPlayers]uint8{0, 1, 2, 3} {
		t.Errorf("finish order = %v", g.FinishOrder)
	}
}

// TestSubmitTurnPanicsOnCallerMisuse: out-of-range seat, wrong seat, and
// cards not held are fatal precondition violations.
func TestSubmitTurnPanicsOnCallerMisuse(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	g := scenario([NumPlayers][]Card{
		{NewCard(SuitSpades, rk(5))},
		{NewCard(SuitHearts, rk(3))},
		{NewCard(SuitClubs, rk(3))},
		{NewCard(SuitDiamonds, rk(3))},
	})
	mustPanic("out of range", func() { g.SubmitTurn(4, nil) })
	mustPanic("wrong seat", func() { g.SubmitTurn(2, nil) })
	mustPanic("card not held", func() { g.SubmitTurn(0, hand(NewCard(SuitHearts, rk(14)))) })
}

// TestSnapshotRoundTrip: Save then Restore reproduces the exact state.
func TestSnapshotRoundTrip(t *testing.T) {
	g := newDealtMatch(99)
	snap := g.Save()

	g.SubmitTurn(g.CurrentPlayer, nil)
	g.Restore(snap)
	if g != GameState(snap) {
		t.Error("restored state differs from snapshot")
	}
}

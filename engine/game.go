// Package engine implements the Guan Dan card game rules.
//
// The package is a pure, dependency-free core: a flat value-type GameState,
// a combination classifier, a play-legality predicate, the per-trick and
// per-hand turn state machine, and hand scoring. All I/O, identity, and
// persistence concerns live in the service layer on top of it.
package engine

import "fmt"

const (
	NumPlayers     = 4
	NumTeams       = 2
	DeckSize       = 108 // two standard decks + four jokers
	CardsPerPlayer = 27
	MaxPlaySize    = 8 // largest legal play: an 8-card bomb
	MaxLevel       = 14
	trickPassLimit = 3 // consecutive passes that close a trick
)

// PlayerState holds one player's hand. Fixed-size array plus explicit
// length, no heap allocation.
type PlayerState struct {
	Hand     [CardsPerPlayer]Card
	HandLen  uint8
	Finished bool
}

// HandSlice returns the live portion of the hand.
func (p *PlayerState) HandSlice() []Card { return p.Hand[:p.HandLen] }

// GameState holds the complete, self-contained state of a Guan Dan match:
// four seats in two fixed teams (seats 0/2 vs 1/3), the deck, the active
// trick's top play, pass accumulation, per-team levels, and the RNG. It is
// a flat value type; copying it copies the whole match.
type GameState struct {
	Players [NumPlayers]PlayerState

	Deck    [DeckSize]Card
	DeckLen uint8

	// Active trick. Only the most recent accepted play matters for
	// legality, so the engine keeps just the top of the sequence.
	TopPlay    [MaxPlaySize]Card
	TopPlayLen uint8
	topCombo   Combo

	CurrentPlayer uint8
	TrickLeader   uint8 // seat of the last accepted play
	Passes        uint8

	FinishOrder [NumPlayers]uint8
	NumFinished uint8

	Levels       [NumTeams]uint8
	DeclarerTeam uint8 // team whose level sets the hand's level card
	HandLeader   uint8 // seat that leads the next hand
	HandLevel    uint8 // level in effect for the current hand

	RNG   uint64
	Rules Rules
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// Match construction and dealing
// ---------------------------------------------------------------------------

// NewMatch initializes a match with the given seed and rules. Both teams
// start at the configured level; no hand is dealt yet.
func NewMatch(seed uint64, rules Rules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	lvl := rules.startingLevel()
	g.Levels = [NumTeams]uint8{lvl, lvl}
	g.DeclarerTeam = 0
	g.HandLeader = rules.FirstLeader % NumPlayers
	return g
}

// buildDeck fills the deck with two copies of the 52-card deck plus two
// black and two red jokers.
func (g *GameState) buildDeck() {
	idx := 0
	for copyN := 0; copyN < 2; copyN++ {
		for suit := uint8(SuitHearts); suit <= SuitSpades; suit++ {
			for rank := RankTwo; rank <= RankAce; rank++ {
				g.Deck[idx] = NewCard(suit, rank)
				idx++
			}
		}
		g.Deck[idx] = NewCard(SuitJoker, RankBlackJoker)
		g.Deck[idx+1] = NewCard(SuitJoker, RankRedJoker)
		idx += 2
	}
	g.DeckLen = DeckSize
}

// DealHand starts a new hand: rebuilds and shuffles the deck, fixes the
// hand level from the declarer team's current level, deals 27 cards to each
// seat, sorts every hand ascending by per-hand value, and resets trick and
// finish state. The hand leader takes the first turn.
func (g *GameState) DealHand() {
	g.buildDeck()
	g.HandLevel = g.Levels[g.DeclarerTeam]

	// Fisher-Yates shuffle.
	for i := int(g.DeckLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	}

	for p := range g.Players {
		g.Players[p] = PlayerState{}
	}
	for c := uint8(0); c < CardsPerPlayer; c++ {
		for p := 0; p < NumPlayers; p++ {
			g.DeckLen--
			g.Players[p].Hand[c] = g.Deck[g.DeckLen]
			g.Players[p].HandLen++
		}
	}
	for p := range g.Players {
		g.sortHand(&g.Players[p])
	}

	g.clearTrick()
	g.FinishOrder = [NumPlayers]uint8{}
	g.NumFinished = 0
	g.TrickLeader = g.HandLeader
	g.CurrentPlayer = g.HandLeader
}

// sortHand insertion-sorts a hand ascending by per-hand value. Hands are
// small and nearly random; no allocation.
func (g *GameState) sortHand(p *PlayerState) {
	hand := p.Hand[:p.HandLen]
	for i := 1; i < len(hand); i++ {
		c := hand[i]
		v := c.Value(g.HandLevel)
		j := i - 1
		for j >= 0 && hand[j].Value(g.HandLevel) > v {
			hand[j+1] = hand[j]
			j--
		}
		hand[j+1] = c
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// TeamOf returns the team (0 or 1) of the given seat. Seats alternate
// teams: 0/2 vs 1/3.
func TeamOf(player uint8) uint8 { return player % 2 }

// PartnerOf returns the seat of the given seat's partner.
func PartnerOf(player uint8) uint8 { return (player + 2) % NumPlayers }

// TopCombo returns the classification of the trick's top play, or the zero
// Combo when the trick is empty.
func (g *GameState) TopCombo() Combo { return g.topCombo }

// TopPlaySlice returns the cards of the trick's top play (nil when empty).
func (g *GameState) TopPlaySlice() []Card {
	if g.TopPlayLen == 0 {
		return nil
	}
	return g.TopPlay[:g.TopPlayLen]
}

// TrickOpen reports whether a play is currently on the table.
func (g *GameState) TrickOpen() bool { return g.TopPlayLen > 0 }

// HandComplete reports whether all four seats have emptied their hands.
func (g *GameState) HandComplete() bool { return g.NumFinished == NumPlayers }

// nextActive returns the first unfinished seat strictly after from,
// wrapping mod NumPlayers. Returns from itself when no other seat remains.
func (g *GameState) nextActive(from uint8) uint8 {
	for i := uint8(1); i <= NumPlayers; i++ {
		p := (from + i) % NumPlayers
		if !g.Players[p].Finished {
			return p
		}
	}
	return from
}

// firstActiveFrom returns from if unfinished, else the next unfinished seat.
func (g *GameState) firstActiveFrom(from uint8) uint8 {
	if !g.Players[from].Finished {
		return from
	}
	return g.nextActive(from)
}

func (g *GameState) clearTrick() {
	g.TopPlayLen = 0
	g.topCombo = Combo{}
	g.Passes = 0
}

// ---------------------------------------------------------------------------
// State injection
// ---------------------------------------------------------------------------

// LoadHand replaces a seat's hand with the given cards, sorted by per-hand
// value. Intended for scenario setup and state restoration.
func (g *GameState) LoadHand(seat uint8, cards []Card) {
	p := &g.Players[seat]
	*p = PlayerState{}
	copy(p.Hand[:], cards)
	p.HandLen = uint8(len(cards))
	g.sortHand(p)
}

// LoadTable sets the trick's top play directly, classifying it at the
// current hand level. An empty slice clears the table.
func (g *GameState) LoadTable(cards []Card) {
	if len(cards) == 0 {
		g.clearTrick()
		return
	}
	copy(g.TopPlay[:], cards)
	g.TopPlayLen = uint8(len(cards))
	g.topCombo = Classify(cards, g.HandLevel)
}

// Snapshot is a complete value-copy of GameState for undo support.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }

// ---------------------------------------------------------------------------
// Turn state machine
// ---------------------------------------------------------------------------

// SubmitTurn processes one turn for the given seat: an empty cards slice is
// a pass, anything else an offered play.
//
// Outcomes:
//   - StatusPass: pass recorded, turn advances.
//   - StatusTrickWon: third consecutive pass closed the trick; the table
//     clears and the lead returns to the trick leader.
//   - StatusInvalid: the play does not beat the table; no state changed and
//     the same seat must be re-prompted.
//   - StatusPlayed: play accepted, cards removed, turn advances.
//   - StatusHandWon: play accepted and the seat's hand is now empty.
//
// A seat index out of range, a submission for a seat other than the current
// one, or playing cards not held are caller bugs and panic.
func (g *GameState) SubmitTurn(player uint8, cards []Card) TurnStatus {
	if player >= NumPlayers {
		panic(fmt.Sprintf("engine: player index %d out of range", player))
	}
	if player != g.CurrentPlayer {
		panic(fmt.Sprintf("engine: submission for seat %d but seat %d is to act", player, g.CurrentPlayer))
	}

	if len(cards) == 0 {
		g.Passes++
		if g.Passes >= trickPassLimit {
			g.clearTrick()
			g.CurrentPlayer = g.firstActiveFrom(g.TrickLeader)
			return StatusTrickWon
		}
		g.CurrentPlayer = g.nextActive(player)
		return StatusPass
	}

	candidate := Classify(cards, g.HandLevel)
	if !Beats(candidate, g.topCombo) {
		return StatusInvalid
	}

	g.removeFromHand(player, cards)
	copy(g.TopPlay[:], cards)
	g.TopPlayLen = uint8(len(cards))
	g.topCombo = candidate
	g.TrickLeader = player
	g.Passes = 0

	won := g.Players[player].HandLen == 0
	if won {
		g.Players[player].Finished = true
		g.FinishOrder[g.NumFinished] = player
		g.NumFinished++
	}
	g.CurrentPlayer = g.nextActive(player)

	if won {
		return StatusHandWon
	}
	return StatusPlayed
}

// removeFromHand removes exactly the named cards from the seat's hand.
// Cards match by identity (rank and suit); the two deck copies of a card
// are interchangeable. Panics if a card is not held.
func (g *GameState) removeFromHand(player uint8, cards []Card) {
	p := &g.Players[player]
	for _, c := range cards {
		found := false
		for i := uint8(0); i < p.HandLen; i++ {
			if p.Hand[i] == c {
				copy(p.Hand[i:p.HandLen-1], p.Hand[i+1:p.HandLen])
				p.HandLen--
				found = true
				break
			}
		}
		if !found {
			panic(fmt.Sprintf("engine: seat %d does not hold %v", player, c))
		}
	}
}

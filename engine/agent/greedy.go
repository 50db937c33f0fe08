// Package agent provides the greedy baseline player for the Guan Dan
// engine: it enumerates every combination latent in a hand and plays the
// cheapest one that beats the table.
package agent

import "github.com/jason-s-yu/guandan/engine"

// Greedy is a stateless decision source that always plays the
// lowest-ranking legal combination and passes when nothing beats the table.
// Deliberately not a strong player: it ignores hand-shape retention,
// partner signaling, and end-game sequencing.
type Greedy struct{}

// Decide returns the seat's chosen play, or nil to pass.
func (Greedy) Decide(g *engine.GameState, seat uint8) []engine.Card {
	return BestPlay(g, seat)
}

// BestPlay enumerates all candidate plays in the seat's hand — singles,
// value groups (pairs, triples, 4+ bombs), full houses, 5-card straight
// windows (and their flush variants), tubes, plates, and the joker pair —
// classifies and legality-checks each, and returns the one with the
// numerically smallest rank. Returns nil when no candidate beats the table.
//
// Ties on rank resolve to the first candidate generated; generation order
// is deterministic (ascending value, left-to-right windows), so the choice
// is stable for a given hand and table.
func BestPlay(g *engine.GameState, seat uint8) []engine.Card {
	hand := g.Players[seat].HandSlice()
	if len(hand) == 0 {
		return nil
	}
	level := g.HandLevel

	// Bucket the hand by per-hand value. The hand is kept sorted ascending,
	// so buckets and the distinct-value order fill ascending too.
	var byValue [engine.MaxCardValue + 1][]engine.Card
	var order []uint8
	for _, c := range hand {
		v := c.Value(level)
		if len(byValue[v]) == 0 {
			order = append(order, v)
		}
		byValue[v] = append(byValue[v], c)
	}

	var candidates [][]engine.Card
	var pairs, triples [][]engine.Card
	var pairVals, tripleVals []uint8

	// Value groups: single, pair, triple, full-multiplicity bomb.
	for _, v := range order {
		group := byValue[v]
		candidates = append(candidates, group[:1])
		if len(group) >= 2 {
			pairs = append(pairs, group[:2])
			pairVals = append(pairVals, v)
			candidates = append(candidates, group[:2])
		}
		if len(group) >= 3 {
			triples = append(triples, group[:3])
			tripleVals = append(tripleVals, v)
			candidates = append(candidates, group[:3])
		}
		if len(group) >= 4 {
			candidates = append(candidates, group)
		}
	}

	// Full houses: every triple with every pair of a different value.
	for ti, t := range triples {
		for pi, p := range pairs {
			if tripleVals[ti] == pairVals[pi] {
				continue
			}
			fh := make([]engine.Card, 0, 5)
			fh = append(fh, t...)
			fh = append(fh, p...)
			candidates = append(candidates, fh)
		}
	}

	// Straights: every 5-wide window of consecutive distinct values, one
	// card per value. A monochrome window classifies as a straight flush
	// on its own.
	for i := 0; i+4 < len(order); i++ {
		if order[i+4]-order[i] != 4 {
			continue
		}
		run := make([]engine.Card, 5)
		for j := 0; j < 5; j++ {
			run[j] = byValue[order[i+j]][0]
		}
		candidates = append(candidates, run)
	}

	// Tubes: three pairs on consecutive values.
	for i := 0; i+2 < len(pairs); i++ {
		if pairVals[i+1]-pairVals[i] != 1 || pairVals[i+2]-pairVals[i+1] != 1 {
			continue
		}
		tube := make([]engine.Card, 0, 6)
		tube = append(tube, pairs[i]...)
		tube = append(tube, pairs[i+1]...)
		tube = append(tube, pairs[i+2]...)
		candidates = append(candidates, tube)
	}

	// Plates: two triples on consecutive values.
	for i := 0; i+1 < len(triples); i++ {
		if tripleVals[i+1]-tripleVals[i] != 1 {
			continue
		}
		plate := make([]engine.Card, 0, 6)
		plate = append(plate, triples[i]...)
		plate = append(plate, triples[i+1]...)
		candidates = append(candidates, plate)
	}

	// Joker bomb: exactly two jokers held.
	var jokers []engine.Card
	for _, c := range hand {
		if c.IsJoker() {
			jokers = append(jokers, c)
		}
	}
	if len(jokers) == 2 {
		candidates = append(candidates, jokers)
	}

	// Pick the cheapest legal escape.
	table := g.TopCombo()
	var best []engine.Card
	var bestRank int16
	for _, play := range candidates {
		combo := engine.Classify(play, level)
		if !combo.Valid() || !engine.Beats(combo, table) {
			continue
		}
		if best == nil || combo.Rank < bestRank {
			best = play
			bestRank = combo.Rank
		}
	}
	return best
}

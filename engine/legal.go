package engine

// Beats reports whether the candidate classification may be played over the
// active one. A zero-value active combo (KindInvalid) means the trick is
// empty, in which case any valid candidate opens it.
//
// Rules, in order:
//  1. An invalid candidate never plays.
//  2. On an empty trick, any valid candidate is accepted.
//  3. A bomb beats any non-bomb; a non-bomb never beats a bomb.
//  4. Bomb vs bomb compares by rank across the whole family (joker bomb's
//     fixed rank of 1000 tops it; 6+-card bombs rank 100·n+v, so a bigger
//     bomb dominates any smaller one regardless of value).
//  5. Non-bomb vs non-bomb requires the same kind and a strictly higher rank.
func Beats(candidate, active Combo) bool {
	if !candidate.Valid() {
		return false
	}
	if !active.Valid() {
		return true
	}

	candBomb := candidate.Kind.IsBomb()
	activeBomb := active.Kind.IsBomb()

	if candBomb && !activeBomb {
		return true
	}
	if !candBomb && activeBomb {
		return false
	}
	if candBomb && activeBomb {
		return candidate.Rank > active.Rank
	}

	if candidate.Kind != active.Kind {
		return false
	}
	return candidate.Rank > active.Rank
}

// IsLegalPlay reports whether the given cards may be played over the current
// trick's top play. Pure query; does not mutate state.
func (g *GameState) IsLegalPlay(cards []Card) bool {
	candidate := Classify(cards, g.HandLevel)
	return Beats(candidate, g.TopCombo())
}

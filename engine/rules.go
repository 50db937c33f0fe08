package engine

// Rules holds configurable match settings. The deck composition (two
// standard decks plus four jokers) and the four-seat, two-team layout are
// structural and not configurable.
type Rules struct {
	StartingLevel uint8 // level both teams start at; 0 treated as 2
	FirstLeader   uint8 // seat that leads the first hand (0–3)
}

// DefaultRules returns the standard Guan Dan match rules.
func DefaultRules() Rules {
	return Rules{
		StartingLevel: 2,
		FirstLeader:   0,
	}
}

// startingLevel returns the effective starting level, treating 0 as 2.
func (r *Rules) startingLevel() uint8 {
	if r.StartingLevel == 0 {
		return 2
	}
	return r.StartingLevel
}

package engine

// levelDelta maps the winning partner's finish position (1-based index into
// the finish order) to the team's level gain: 2nd → +3, 3rd → +2, 4th → +1.
var levelDelta = [NumPlayers]uint8{0, 3, 2, 1}

// ScoreHand consumes a completed hand's finish order (seats, 1st → last)
// and applies the level progression for the winning team.
//
// If the winning team already sat at MaxLevel before this hand, the game is
// over immediately and no level change is applied. Otherwise the team's
// level rises by the partner-position delta, capped at MaxLevel, and the
// winner's team becomes the next hand's declarer with the winner leading.
//
// Returns the winning team's (possibly unchanged) level and whether the
// match is over.
func (g *GameState) ScoreHand(finishOrder [NumPlayers]uint8) (newLevel uint8, gameOver bool) {
	winner := finishOrder[0]
	team := TeamOf(winner)

	// Winning a hand while at the Ace level wins the match.
	if g.Levels[team] == MaxLevel {
		return g.Levels[team], true
	}

	partner := PartnerOf(winner)
	var delta uint8
	for pos := 1; pos < NumPlayers; pos++ {
		if finishOrder[pos] == partner {
			delta = levelDelta[pos]
			break
		}
	}

	newLevel = g.Levels[team] + delta
	if newLevel > MaxLevel {
		newLevel = MaxLevel
	}
	g.Levels[team] = newLevel

	g.DeclarerTeam = team
	g.HandLeader = winner
	return newLevel, false
}

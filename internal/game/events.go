package game

import "github.com/jason-s-yu/guandan/internal/models"

// MatchEventType identifies a broadcastable match event.
type MatchEventType string

const (
	EventHandStarted    MatchEventType = "hand_started"    // new hand dealt; payload: hand number, level, declarer team
	EventPlayerPlayed   MatchEventType = "player_played"   // accepted play; cards revealed
	EventPlayerPassed   MatchEventType = "player_passed"   // pass recorded
	EventTrickWon       MatchEventType = "trick_won"       // three passes closed the trick
	EventInvalidPlay    MatchEventType = "invalid_play"    // rejected play; same seat re-prompted
	EventPlayerFinished MatchEventType = "player_finished" // seat emptied its hand
	EventHandScored     MatchEventType = "hand_scored"     // finish order scored into a level change
	EventMatchEnd       MatchEventType = "match_end"       // a team won at the Ace level
)

// MatchEvent is the standard structure for broadcasting match state
// changes. Every accepted play in Guan Dan is public, so events carry full
// card details.
type MatchEvent struct {
	Type   MatchEventType `json:"type"`
	Seat   *uint8         `json:"seat,omitempty"`
	Player *models.Player `json:"player,omitempty"`
	Cards  []models.Card  `json:"cards,omitempty"`
	Combo  string         `json:"combo,omitempty"` // kind name of an accepted play
	Rank   int            `json:"rank,omitempty"`  // comparable rank of an accepted play

	Payload map[string]interface{} `json:"payload,omitempty"`
}

func seatRef(seat uint8) *uint8 { return &seat }

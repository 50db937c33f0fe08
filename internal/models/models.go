// Package models holds the service-side representations of players and
// cards: engine values enriched with UUIDs and display fields for clients
// and persistence.
package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jason-s-yu/guandan/engine"
)

// Card is the client-facing view of an engine card. Value and Wild are
// hand-scoped (derived from the hand's level at translation time).
type Card struct {
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
	Wild  bool   `json:"wild,omitempty"`
}

// CardFromEngine translates a packed engine card for a hand at the given
// level.
func CardFromEngine(c engine.Card, level uint8) Card {
	return Card{
		Rank:  c.RankName(),
		Suit:  c.SuitName(),
		Value: int(c.Value(level)),
		Wild:  c.IsWild(level),
	}
}

// CardsFromEngine translates a play or hand.
func CardsFromEngine(cards []engine.Card, level uint8) []Card {
	if len(cards) == 0 {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = CardFromEngine(c, level)
	}
	return out
}

// ToEngine resolves the card back to its packed engine form. Fails on
// unknown rank/suit names (malformed client input).
func (c Card) ToEngine() (engine.Card, error) {
	var rank, suit uint8
	found := false
	for r := engine.RankTwo; r <= engine.RankRedJoker; r++ {
		if engine.NewCard(engine.SuitJoker, r).RankName() == c.Rank {
			rank, found = r, true
			break
		}
	}
	if !found {
		return engine.EmptyCard, fmt.Errorf("models: unknown rank %q", c.Rank)
	}
	if rank == engine.RankBlackJoker || rank == engine.RankRedJoker {
		return engine.NewCard(engine.SuitJoker, rank), nil
	}
	found = false
	for s := engine.SuitHearts; s <= engine.SuitSpades; s++ {
		if engine.NewCard(s, engine.RankTwo).SuitName() == c.Suit {
			suit, found = s, true
			break
		}
	}
	if !found {
		return engine.EmptyCard, fmt.Errorf("models: unknown suit %q", c.Suit)
	}
	return engine.NewCard(suit, rank), nil
}

// CardsToEngine resolves a client play to packed engine cards.
func CardsToEngine(cards []Card) ([]engine.Card, error) {
	out := make([]engine.Card, len(cards))
	for i, c := range cards {
		ec, err := c.ToEngine()
		if err != nil {
			return nil, err
		}
		out[i] = ec
	}
	return out, nil
}

// Player is one seat in a match.
type Player struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Seat  uint8     `json:"seat"`
	Team  uint8     `json:"team"`
	Agent bool      `json:"agent"` // true when the greedy agent drives this seat
}

// NewPlayer creates a player for the given seat; the team follows the
// seat's fixed alternation.
func NewPlayer(name string, seat uint8) *Player {
	return &Player{
		ID:   uuid.New(),
		Name: name,
		Seat: seat,
		Team: engine.TeamOf(seat),
	}
}

// Package game wraps the pure engine in a service-facing match: seat
// identities, decision sources, event broadcast, and result persistence.
package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/guandan/engine"
	"github.com/jason-s-yu/guandan/engine/agent"
	"github.com/jason-s-yu/guandan/internal/models"
)

// Decider is a seat's decision source: given the current state, it returns
// the cards to play, or nil to pass. The engine's greedy agent and a
// remote (client-driven) submitter both implement it; the source is chosen
// per seat at construction and never swapped mid-match.
type Decider interface {
	Decide(ctx context.Context, g *engine.GameState, seat uint8) ([]engine.Card, error)
}

// AgentDecider drives a seat with the engine's greedy agent.
type AgentDecider struct{}

func (AgentDecider) Decide(_ context.Context, g *engine.GameState, seat uint8) ([]engine.Card, error) {
	return agent.Greedy{}.Decide(g, seat), nil
}

// RemoteDecider sources plays from an external submitter, typically a
// websocket client. Decide blocks until a play arrives or the context ends.
type RemoteDecider struct {
	plays chan []engine.Card
}

func NewRemoteDecider() *RemoteDecider {
	return &RemoteDecider{plays: make(chan []engine.Card)}
}

func (d *RemoteDecider) Decide(ctx context.Context, _ *engine.GameState, _ uint8) ([]engine.Card, error) {
	select {
	case play := <-d.plays:
		return play, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit hands a play (nil for pass) to the blocked Decide call.
func (d *RemoteDecider) Submit(ctx context.Context, cards []engine.Card) error {
	select {
	case d.plays <- cards:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandRecord is the persisted outcome of one completed hand.
type HandRecord struct {
	MatchID     uuid.UUID
	HandNumber  int
	Level       uint8
	FinishOrder [engine.NumPlayers]uint8
	WinningTeam uint8
	NewLevel    uint8
}

// MatchRecord is the persisted outcome of a finished match.
type MatchRecord struct {
	MatchID     uuid.UUID
	WinningTeam uint8
	HandsPlayed int
	Levels      [engine.NumTeams]uint8
}

// RecordStore persists match outcomes. The pgx-backed implementation lives
// in internal/database; a nil store disables persistence.
type RecordStore interface {
	RecordHand(ctx context.Context, rec HandRecord) error
	RecordMatch(ctx context.Context, rec MatchRecord) error
}

// LiveCache mirrors live match state for dashboards and lobby listings.
// The Redis-backed implementation lives in internal/cache; nil disables it.
type LiveCache interface {
	SetTeamLevels(ctx context.Context, matchID uuid.UUID, levels [engine.NumTeams]uint8) error
	AddActiveMatch(ctx context.Context, matchID uuid.UUID) error
	RemoveActiveMatch(ctx context.Context, matchID uuid.UUID) error
}

// Config assembles a match. Seats with a nil Decider default to the greedy
// agent.
type Config struct {
	Seed     uint64
	Rules    engine.Rules
	Names    [engine.NumPlayers]string
	Deciders [engine.NumPlayers]Decider
	Store    RecordStore
	Cache    LiveCache
	Logger   *logrus.Logger
}

// Match runs one Guan Dan match: hands are dealt and played until a team
// wins at the Ace level. The engine state is mutated only by the Run loop;
// external plays enter through RemoteDecider channels, so callers never
// touch the state concurrently.
type Match struct {
	ID      uuid.UUID
	Players [engine.NumPlayers]*models.Player

	mu          sync.Mutex
	state       engine.GameState
	deciders    [engine.NumPlayers]Decider
	subscribers []func(MatchEvent)
	store       RecordStore
	cache       LiveCache
	log         *logrus.Entry

	HandNumber int
}

// NewMatch builds a match from the config. No hand is dealt yet.
func NewMatch(cfg Config) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	m := &Match{
		ID:       uuid.New(),
		state:    engine.NewMatch(cfg.Seed, cfg.Rules),
		deciders: cfg.Deciders,
		store:    cfg.Store,
		cache:    cfg.Cache,
	}
	m.log = logger.WithField("match_id", m.ID)
	for seat := uint8(0); seat < engine.NumPlayers; seat++ {
		name := cfg.Names[seat]
		if name == "" {
			name = fmt.Sprintf("Seat %d", seat)
		}
		m.Players[seat] = models.NewPlayer(name, seat)
		if m.deciders[seat] == nil {
			m.deciders[seat] = AgentDecider{}
			m.Players[seat].Agent = true
		}
	}
	return m
}

// Subscribe registers an event listener. Safe to call while the match is
// running; the listener sees events from that point on.
func (m *Match) Subscribe(fn func(MatchEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Match) broadcast(ev MatchEvent) {
	m.mu.Lock()
	subs := make([]func(MatchEvent), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// State returns a value copy of the engine state, for observers.
func (m *Match) State() engine.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// PlayerBySeat returns the seat's player.
func (m *Match) PlayerBySeat(seat uint8) *models.Player { return m.Players[seat] }

// SeatByPlayerID resolves a player UUID to its seat.
func (m *Match) SeatByPlayerID(id uuid.UUID) (uint8, bool) {
	for seat, p := range m.Players {
		if p.ID == id {
			return uint8(seat), true
		}
	}
	return 0, false
}

// SubmitPlay forwards a client play to the seat's RemoteDecider. Returns an
// error for agent-driven seats.
func (m *Match) SubmitPlay(ctx context.Context, playerID uuid.UUID, cards []engine.Card) error {
	seat, ok := m.SeatByPlayerID(playerID)
	if !ok {
		return fmt.Errorf("game: unknown player %s", playerID)
	}
	rd, ok := m.deciders[seat].(*RemoteDecider)
	if !ok {
		return fmt.Errorf("game: seat %d is not remotely driven", seat)
	}
	return rd.Submit(ctx, cards)
}

// Run plays the match to completion and returns the winning team. The
// caller owns the context; cancelling it aborts mid-hand.
func (m *Match) Run(ctx context.Context) (winningTeam uint8, err error) {
	if m.cache != nil {
		if cerr := m.cache.AddActiveMatch(ctx, m.ID); cerr != nil {
			m.log.WithError(cerr).Warn("cache: failed to register active match")
		}
		defer func() {
			if cerr := m.cache.RemoveActiveMatch(context.WithoutCancel(ctx), m.ID); cerr != nil {
				m.log.WithError(cerr).Warn("cache: failed to deregister match")
			}
		}()
	}

	for {
		over, team, herr := m.playHand(ctx)
		if herr != nil {
			return 0, herr
		}
		if over {
			m.broadcast(MatchEvent{
				Type: EventMatchEnd,
				Payload: map[string]interface{}{
					"winning_team": team,
					"hands_played": m.HandNumber,
				},
			})
			m.log.WithFields(logrus.Fields{
				"winning_team": team,
				"hands":        m.HandNumber,
			}).Info("match over")
			if m.store != nil {
				st := m.State()
				rec := MatchRecord{
					MatchID:     m.ID,
					WinningTeam: team,
					HandsPlayed: m.HandNumber,
					Levels:      st.Levels,
				}
				if serr := m.store.RecordMatch(ctx, rec); serr != nil {
					m.log.WithError(serr).Error("store: failed to record match")
				}
			}
			return team, nil
		}
	}
}

// playHand deals and plays one hand, scores it, and reports whether the
// match ended.
func (m *Match) playHand(ctx context.Context) (over bool, winningTeam uint8, err error) {
	m.mu.Lock()
	m.state.DealHand()
	m.HandNumber++
	handNo := m.HandNumber
	level := m.state.HandLevel
	declarer := m.state.DeclarerTeam
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"hand":     handNo,
		"level":    level,
		"declarer": declarer,
	}).Info("hand started")
	m.broadcast(MatchEvent{
		Type: EventHandStarted,
		Payload: map[string]interface{}{
			"hand":          handNo,
			"level":         level,
			"declarer_team": declarer,
		},
	})

	for {
		m.mu.Lock()
		complete := m.state.HandComplete()
		seat := m.state.CurrentPlayer
		m.mu.Unlock()
		if complete {
			break
		}
		if err := ctx.Err(); err != nil {
			return false, 0, err
		}

		play, derr := m.deciders[seat].Decide(ctx, &m.state, seat)
		if derr != nil {
			return false, 0, fmt.Errorf("game: seat %d decision: %w", seat, derr)
		}
		if len(play) > 0 && !m.holdsAll(seat, play) {
			// Client named cards it does not hold; reject before the
			// engine treats it as a fatal precondition violation.
			m.broadcast(MatchEvent{Type: EventInvalidPlay, Seat: seatRef(seat), Player: m.Players[seat]})
			continue
		}

		m.mu.Lock()
		status := m.state.SubmitTurn(seat, play)
		combo := m.state.TopCombo()
		winner := m.state.TrickLeader
		m.mu.Unlock()

		switch status {
		case engine.StatusInvalid:
			m.broadcast(MatchEvent{Type: EventInvalidPlay, Seat: seatRef(seat), Player: m.Players[seat]})
		case engine.StatusPass:
			m.broadcast(MatchEvent{Type: EventPlayerPassed, Seat: seatRef(seat), Player: m.Players[seat]})
		case engine.StatusTrickWon:
			// The third pass closes the trick; the event names the seat
			// whose play stood, not the passer.
			m.broadcast(MatchEvent{Type: EventTrickWon, Seat: seatRef(winner), Player: m.Players[winner]})
		case engine.StatusPlayed, engine.StatusHandWon:
			ev := MatchEvent{
				Type:   EventPlayerPlayed,
				Seat:   seatRef(seat),
				Player: m.Players[seat],
				Cards:  models.CardsFromEngine(play, level),
				Combo:  combo.Kind.String(),
				Rank:   int(combo.Rank),
			}
			m.broadcast(ev)
			m.log.WithFields(logrus.Fields{
				"seat":  seat,
				"combo": combo.Kind.String(),
				"rank":  combo.Rank,
				"cards": len(play),
			}).Debug("play accepted")
			if status == engine.StatusHandWon {
				m.broadcast(MatchEvent{Type: EventPlayerFinished, Seat: seatRef(seat), Player: m.Players[seat]})
			}
		}
	}

	m.mu.Lock()
	order := m.state.FinishOrder
	newLevel, gameOver := m.state.ScoreHand(order)
	levels := m.state.Levels
	m.mu.Unlock()

	team := engine.TeamOf(order[0])
	m.broadcast(MatchEvent{
		Type: EventHandScored,
		Payload: map[string]interface{}{
			"finish_order": order,
			"winning_team": team,
			"new_level":    newLevel,
			"game_over":    gameOver,
		},
	})
	m.log.WithFields(logrus.Fields{
		"hand":         handNo,
		"winning_team": team,
		"new_level":    newLevel,
	}).Info("hand scored")

	if m.store != nil {
		rec := HandRecord{
			MatchID:     m.ID,
			HandNumber:  handNo,
			Level:       level,
			FinishOrder: order,
			WinningTeam: team,
			NewLevel:    newLevel,
		}
		if serr := m.store.RecordHand(ctx, rec); serr != nil {
			m.log.WithError(serr).Error("store: failed to record hand")
		}
	}
	if m.cache != nil {
		if cerr := m.cache.SetTeamLevels(ctx, m.ID, levels); cerr != nil {
			m.log.WithError(cerr).Warn("cache: failed to publish levels")
		}
	}
	return gameOver, team, nil
}

// holdsAll verifies the seat holds every named card, respecting duplicate
// deck copies.
func (m *Match) holdsAll(seat uint8, play []engine.Card) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	var counts [256]int8
	for _, c := range m.state.Players[seat].HandSlice() {
		counts[c]++
	}
	for _, c := range play {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}

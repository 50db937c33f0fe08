// Package server exposes matches over HTTP and websockets: clients create a
// match, receive per-seat tokens, then connect a websocket to stream events
// and submit plays for their seat.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/guandan/engine"
	"github.com/jason-s-yu/guandan/internal/auth"
	"github.com/jason-s-yu/guandan/internal/game"
	"github.com/jason-s-yu/guandan/internal/models"
)

const (
	tokenTTL       = 12 * time.Hour
	eventQueueSize = 64
)

// Server hosts running matches.
type Server struct {
	log       *logrus.Logger
	jwtSecret []byte
	store     game.RecordStore
	cache     game.LiveCache

	mu      sync.Mutex
	matches map[uuid.UUID]*game.Match
	cancels map[uuid.UUID]context.CancelFunc
}

// New builds a server. store and cache may be nil to disable persistence
// and the live cache.
func New(log *logrus.Logger, jwtSecret []byte, store game.RecordStore, cache game.LiveCache) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		log:       log,
		jwtSecret: jwtSecret,
		store:     store,
		cache:     cache,
		matches:   make(map[uuid.UUID]*game.Match),
		cancels:   make(map[uuid.UUID]context.CancelFunc),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /matches", s.handleCreateMatch)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return mux
}

// CreateMatchRequest configures a new match. Seats marked as agents are
// driven by the greedy agent; the rest await websocket clients.
type CreateMatchRequest struct {
	Names      [engine.NumPlayers]string `json:"names"`
	AgentSeats [engine.NumPlayers]bool   `json:"agent_seats"`
	Seed       uint64                    `json:"seed"`
}

// SeatInfo describes one seat in the create-match response. Token is empty
// for agent seats.
type SeatInfo struct {
	Seat     uint8     `json:"seat"`
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	Team     uint8     `json:"team"`
	Agent    bool      `json:"agent"`
	Token    string    `json:"token,omitempty"`
}

// CreateMatchResponse is returned from POST /matches.
type CreateMatchResponse struct {
	MatchID uuid.UUID                   `json:"match_id"`
	Seats   [engine.NumPlayers]SeatInfo `json:"seats"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	cfg := game.Config{
		Seed:   req.Seed,
		Rules:  engine.DefaultRules(),
		Names:  req.Names,
		Store:  s.store,
		Cache:  s.cache,
		Logger: s.log,
	}
	for seat := 0; seat < engine.NumPlayers; seat++ {
		if !req.AgentSeats[seat] {
			cfg.Deciders[seat] = game.NewRemoteDecider()
		}
	}
	m := game.NewMatch(cfg)

	resp := CreateMatchResponse{MatchID: m.ID}
	for seat := uint8(0); seat < engine.NumPlayers; seat++ {
		p := m.PlayerBySeat(seat)
		info := SeatInfo{Seat: seat, PlayerID: p.ID, Name: p.Name, Team: p.Team, Agent: p.Agent}
		if !p.Agent {
			token, err := auth.CreateToken(s.jwtSecret, p.ID, p.Name, tokenTTL)
			if err != nil {
				http.Error(w, "token signing failed", http.StatusInternalServerError)
				return
			}
			info.Token = token
		}
		resp.Seats[seat] = info
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.matches[m.ID] = m
	s.cancels[m.ID] = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		if _, err := m.Run(ctx); err != nil {
			s.log.WithError(err).WithField("match_id", m.ID).Warn("match aborted")
		}
		s.mu.Lock()
		delete(s.matches, m.ID)
		delete(s.cancels, m.ID)
		s.mu.Unlock()
	}()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Warn("failed to write create-match response")
	}
}

// ClientMessage is one inbound websocket frame: a play or a pass for the
// authenticated seat.
type ClientMessage struct {
	Type  string        `json:"type"` // "play" or "pass"
	Cards []models.Card `json:"cards,omitempty"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(r.URL.Query().Get("match"))
	if err != nil {
		http.Error(w, "missing or malformed match id", http.StatusBadRequest)
		return
	}
	playerID, name, err := auth.VerifyToken(s.jwtSecret, r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	m := s.matches[matchID]
	s.mu.Unlock()
	if m == nil {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if _, ok := m.SeatByPlayerID(playerID); !ok {
		http.Error(w, "player not in match", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	log := s.log.WithFields(logrus.Fields{"match_id": matchID, "player": name})
	log.Info("client connected")

	ctx := r.Context()
	events := make(chan game.MatchEvent, eventQueueSize)
	m.Subscribe(func(ev game.MatchEvent) {
		select {
		case events <- ev:
		default: // slow consumer; drop rather than stall the match
		}
	})

	go s.writeEvents(ctx, conn, events, log)
	s.readPlays(ctx, conn, m, playerID, log)
}

// writeEvents streams match events to the client as JSON text frames.
func (s *Server) writeEvents(ctx context.Context, conn *websocket.Conn, events <-chan game.MatchEvent, log *logrus.Entry) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				log.WithError(err).Warn("event marshal failed")
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}

// readPlays consumes client frames and forwards plays to the match.
func (s *Server) readPlays(ctx context.Context, conn *websocket.Conn, m *game.Match, playerID uuid.UUID, log *logrus.Entry) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Info("client disconnected")
			return
		}
		play, err := decodeClientMessage(data)
		if err != nil {
			log.WithError(err).Debug("rejected client frame")
			continue
		}
		if err := m.SubmitPlay(ctx, playerID, play); err != nil {
			log.WithError(err).Debug("play submission failed")
		}
	}
}

// decodeClientMessage parses one inbound frame into an engine play; nil
// means pass.
func decodeClientMessage(data []byte) ([]engine.Card, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("server: malformed frame: %w", err)
	}
	switch msg.Type {
	case "pass":
		return nil, nil
	case "play":
		if len(msg.Cards) == 0 {
			return nil, fmt.Errorf("server: play frame with no cards")
		}
		return models.CardsToEngine(msg.Cards)
	default:
		return nil, fmt.Errorf("server: unknown frame type %q", msg.Type)
	}
}

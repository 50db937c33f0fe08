// Package cache mirrors live match state into Redis for lobby listings and
// dashboards.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jason-s-yu/guandan/engine"
	"github.com/jason-s-yu/guandan/internal/game"
)

const (
	activeMatchesKey = "guandan:active_matches"
	levelsKeyPrefix  = "guandan:levels:"
	levelsTTL        = 24 * time.Hour
)

// LiveStore is a Redis-backed game.LiveCache.
type LiveStore struct {
	rdb *redis.Client
}

var _ game.LiveCache = (*LiveStore)(nil)

// NewLiveStore connects to Redis and verifies the connection.
func NewLiveStore(ctx context.Context, addr, password string, db int) (*LiveStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return &LiveStore{rdb: rdb}, nil
}

// SetTeamLevels publishes the current team levels for a match.
func (s *LiveStore) SetTeamLevels(ctx context.Context, matchID uuid.UUID, levels [engine.NumTeams]uint8) error {
	key := levelsKeyPrefix + matchID.String()
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, "team_a", int(levels[0]), "team_b", int(levels[1]))
	pipe.Expire(ctx, key, levelsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: set levels: %w", err)
	}
	return nil
}

// AddActiveMatch registers the match in the active set.
func (s *LiveStore) AddActiveMatch(ctx context.Context, matchID uuid.UUID) error {
	if err := s.rdb.SAdd(ctx, activeMatchesKey, matchID.String()).Err(); err != nil {
		return fmt.Errorf("cache: add active match: %w", err)
	}
	return nil
}

// RemoveActiveMatch removes the match from the active set and drops its
// level hash.
func (s *LiveStore) RemoveActiveMatch(ctx context.Context, matchID uuid.UUID) error {
	pipe := s.rdb.TxPipeline()
	pipe.SRem(ctx, activeMatchesKey, matchID.String())
	pipe.Del(ctx, levelsKeyPrefix+matchID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: remove active match: %w", err)
	}
	return nil
}

// ActiveMatches lists the IDs of matches currently running.
func (s *LiveStore) ActiveMatches(ctx context.Context) ([]uuid.UUID, error) {
	members, err := s.rdb.SMembers(ctx, activeMatchesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: list active matches: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, perr := uuid.Parse(m)
		if perr != nil {
			continue // skip foreign keys in the set
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close shuts down the Redis client.
func (s *LiveStore) Close() error { return s.rdb.Close() }

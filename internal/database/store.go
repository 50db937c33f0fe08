// Package database persists match outcomes to Postgres via pgx.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jason-s-yu/guandan/internal/game"
)

// Schema for the two result tables. Applied idempotently on startup.
const schema = `
CREATE TABLE IF NOT EXISTS hands (
	match_id      UUID        NOT NULL,
	hand_number   INT         NOT NULL,
	level         SMALLINT    NOT NULL,
	finish_order  SMALLINT[]  NOT NULL,
	winning_team  SMALLINT    NOT NULL,
	new_level     SMALLINT    NOT NULL,
	recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (match_id, hand_number)
);
CREATE TABLE IF NOT EXISTS matches (
	match_id      UUID        PRIMARY KEY,
	winning_team  SMALLINT    NOT NULL,
	hands_played  INT         NOT NULL,
	team_a_level  SMALLINT    NOT NULL,
	team_b_level  SMALLINT    NOT NULL,
	recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// MatchStore is a pgx-backed game.RecordStore.
type MatchStore struct {
	pool *pgxpool.Pool
}

var _ game.RecordStore = (*MatchStore)(nil)

// NewMatchStore connects to Postgres and ensures the schema exists.
func NewMatchStore(ctx context.Context, dsn string) (*MatchStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database: apply schema: %w", err)
	}
	return &MatchStore{pool: pool}, nil
}

// RecordHand inserts one completed hand's outcome.
func (s *MatchStore) RecordHand(ctx context.Context, rec game.HandRecord) error {
	order := make([]int16, len(rec.FinishOrder))
	for i, seat := range rec.FinishOrder {
		order[i] = int16(seat)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO hands (match_id, hand_number, level, finish_order, winning_team, new_level)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (match_id, hand_number) DO NOTHING`,
		rec.MatchID, rec.HandNumber, int16(rec.Level), order, int16(rec.WinningTeam), int16(rec.NewLevel),
	)
	if err != nil {
		return fmt.Errorf("database: record hand: %w", err)
	}
	return nil
}

// RecordMatch inserts the final match outcome.
func (s *MatchStore) RecordMatch(ctx context.Context, rec game.MatchRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO matches (match_id, winning_team, hands_played, team_a_level, team_b_level)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (match_id) DO NOTHING`,
		rec.MatchID, int16(rec.WinningTeam), rec.HandsPlayed, int16(rec.Levels[0]), int16(rec.Levels[1]),
	)
	if err != nil {
		return fmt.Errorf("database: record match: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *MatchStore) Close() { s.pool.Close() }

package database

import (
	"context"
	"fmt"
)

// betRecordsSchema creates the bet records table if it does not exist.
// Outcome updates are the only mutation this core performs; rows are never
// deleted here.
const betRecordsSchema = `
CREATE TABLE IF NOT EXISTS bet_records (
    id                  UUID PRIMARY KEY,
    session_id          TEXT NOT NULL,
    sport               TEXT NOT NULL,
    team_a              TEXT NOT NULL,
    team_b              TEXT NOT NULL,
    pick                TEXT NOT NULL DEFAULT '',
    spread              DOUBLE PRECISION NOT NULL DEFAULT 0,
    probability         DOUBLE PRECISION NOT NULL DEFAULT 0,
    odds                DOUBLE PRECISION NOT NULL DEFAULT 0,
    bankroll            DOUBLE PRECISION NOT NULL DEFAULT 0,
    recommended_stake   DOUBLE PRECISION NOT NULL DEFAULT 0,
    actual_wager        DOUBLE PRECISION NOT NULL DEFAULT 0,
    edge                DOUBLE PRECISION NOT NULL DEFAULT 0,
    implied_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
    outcome             TEXT NOT NULL DEFAULT 'pending',
    notes               TEXT NOT NULL DEFAULT '',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    settled_at          TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_bet_records_session ON bet_records (session_id, created_at DESC);
`

// InitSchema applies the bet records schema
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, betRecordsSchema); err != nil {
		return fmt.Errorf("failed to initialize bet records schema: %w", err)
	}
	return nil
}

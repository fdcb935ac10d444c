package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ceddto100/edgeline/internal/database"
	"github.com/ceddto100/edgeline/internal/models"
)

// PostgresBetStore implements BetStore for PostgreSQL
type PostgresBetStore struct {
	db *database.DB
}

// NewPostgresBetStore creates a new PostgreSQL-backed bet store
func NewPostgresBetStore(db *database.DB) BetStore {
	return &PostgresBetStore{db: db}
}

const betColumns = `id, session_id, sport, team_a, team_b, pick, spread, probability, odds,
       bankroll, recommended_stake, actual_wager, edge, implied_probability,
       outcome, notes, created_at, settled_at`

// Append inserts a new bet record
func (s *PostgresBetStore) Append(ctx context.Context, sessionID string, record *models.BetRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.SessionID = sessionID
	if record.Outcome == "" {
		record.Outcome = models.BetOutcomePending
	}

	query := `
		INSERT INTO bet_records (` + betColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.db.GetPool().Exec(ctx, query,
		record.ID, record.SessionID, record.Sport, record.TeamA, record.TeamB, record.Pick,
		record.Spread, record.Probability, record.Odds, record.Bankroll, record.RecommendedStake,
		record.ActualWager, record.Edge, record.ImpliedProbability, record.Outcome, record.Notes,
		record.CreatedAt, record.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bet record: %w", err)
	}
	return nil
}

// Get retrieves all bet records for a session, newest first
func (s *PostgresBetStore) Get(ctx context.Context, sessionID string) ([]*models.BetRecord, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bet_records
		WHERE session_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.GetPool().Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet records: %w", err)
	}
	defer rows.Close()

	var records []*models.BetRecord
	for rows.Next() {
		record, err := scanBetRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetByID retrieves a single bet record
func (s *PostgresBetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.BetRecord, error) {
	query := `SELECT ` + betColumns + ` FROM bet_records WHERE id = $1`

	record, err := scanBetRecord(s.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewDomainError(models.ErrCodeBetNotFound, "no bet with id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateOutcome sets a bet's outcome and settlement time
func (s *PostgresBetStore) UpdateOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error {
	if !outcome.Valid() {
		return models.NewDomainError(models.ErrCodeInvalidInput, "unknown outcome %q", outcome)
	}

	var settledAt *time.Time
	if outcome != models.BetOutcomePending {
		now := time.Now().UTC()
		settledAt = &now
	}

	query := `UPDATE bet_records SET outcome = $2, settled_at = $3 WHERE id = $1`
	tag, err := s.db.GetPool().Exec(ctx, query, id, outcome, settledAt)
	if err != nil {
		return fmt.Errorf("failed to update bet outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewDomainError(models.ErrCodeBetNotFound, "no bet with id %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBetRecord(row rowScanner) (*models.BetRecord, error) {
	record := &models.BetRecord{}
	err := row.Scan(
		&record.ID, &record.SessionID, &record.Sport, &record.TeamA, &record.TeamB, &record.Pick,
		&record.Spread, &record.Probability, &record.Odds, &record.Bankroll, &record.RecommendedStake,
		&record.ActualWager, &record.Edge, &record.ImpliedProbability, &record.Outcome, &record.Notes,
		&record.CreatedAt, &record.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan bet record: %w", err)
	}
	return record, nil
}

// Package repository defines the persistence collaborator for logged bets.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ceddto100/edgeline/internal/models"
)

// BetStore is the write target for orchestration step 5 and the read side
// of bet history. Implementations are keyed by session identifier; the
// orchestrator receives one by injection, never a package-level map.
type BetStore interface {
	Append(ctx context.Context, sessionID string, record *models.BetRecord) error
	Get(ctx context.Context, sessionID string) ([]*models.BetRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BetRecord, error)
	UpdateOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error
}

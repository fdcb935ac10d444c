package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ceddto100/edgeline/internal/models"
)

// MemoryBetStore is a mutex-guarded in-memory BetStore keyed by session.
// Suitable for single-process hosts and tests.
type MemoryBetStore struct {
	mu        sync.RWMutex
	bySession map[string][]*models.BetRecord
	byID      map[uuid.UUID]*models.BetRecord
}

// NewMemoryBetStore creates an empty in-memory store
func NewMemoryBetStore() *MemoryBetStore {
	return &MemoryBetStore{
		bySession: make(map[string][]*models.BetRecord),
		byID:      make(map[uuid.UUID]*models.BetRecord),
	}
}

// Append implements BetStore
func (s *MemoryBetStore) Append(ctx context.Context, sessionID string, record *models.BetRecord) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

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

	s.bySession[sessionID] = append(s.bySession[sessionID], record)
	s.byID[record.ID] = record
	return nil
}

// Get implements BetStore
func (s *MemoryBetStore) Get(ctx context.Context, sessionID string) ([]*models.BetRecord, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.bySession[sessionID]
	out := make([]*models.BetRecord, len(records))
	copy(out, records)
	return out, nil
}

// GetByID implements BetStore
func (s *MemoryBetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.BetRecord, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, models.NewDomainError(models.ErrCodeBetNotFound, "no bet with id %s", id)
	}
	return record, nil
}

// UpdateOutcome implements BetStore
func (s *MemoryBetStore) UpdateOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error {
	_ = ctx
	if !outcome.Valid() {
		return models.NewDomainError(models.ErrCodeInvalidInput, "unknown outcome %q", outcome)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return models.NewDomainError(models.ErrCodeBetNotFound, "no bet with id %s", id)
	}
	record.Outcome = outcome
	if outcome != models.BetOutcomePending {
		now := time.Now().UTC()
		record.SettledAt = &now
	} else {
		record.SettledAt = nil
	}
	return nil
}

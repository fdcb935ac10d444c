// Package teams supplies season statistics keyed by team name and resolves
// free-text team tokens to canonical snapshots with fuzzy matching.
package teams

import (
	"context"

	"github.com/ceddto100/edgeline/internal/models"
)

// Provider is the stats collaborator: a team-name -> season-statistics
// lookup. Implementations must return immutable snapshots.
type Provider interface {
	// Lookup returns the snapshot for an exact canonical name or
	// abbreviation, or models.ErrNotFound.
	Lookup(ctx context.Context, sport models.Sport, name string) (*models.TeamSnapshot, error)
	// All returns every snapshot known for a sport.
	All(ctx context.Context, sport models.Sport) ([]*models.TeamSnapshot, error)
}

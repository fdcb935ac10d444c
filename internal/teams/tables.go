package teams

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ceddto100/edgeline/internal/models"
)

// TableProvider serves snapshots from flat JSON/CSV season tables loaded
// from disk. Loaded snapshots are immutable; Reload swaps the whole table
// atomically so concurrent lookups never observe a partial load.
type TableProvider struct {
	mu     sync.RWMutex
	bySlug map[models.Sport]map[string]*models.TeamSnapshot
	logger *logrus.Logger
}

// NewTableProvider creates an empty table provider
func NewTableProvider(logger *logrus.Logger) *TableProvider {
	return &TableProvider{
		bySlug: make(map[models.Sport]map[string]*models.TeamSnapshot),
		logger: logger,
	}
}

// Lookup implements Provider
func (p *TableProvider) Lookup(ctx context.Context, sport models.Sport, name string) (*models.TeamSnapshot, error) {
	_ = ctx
	p.mu.RLock()
	defer p.mu.RUnlock()

	table, ok := p.bySlug[sport]
	if !ok {
		return nil, models.ErrNotFound
	}
	if snap, ok := table[keyFor(name)]; ok {
		return snap, nil
	}
	return nil, models.ErrNotFound
}

// All implements Provider
func (p *TableProvider) All(ctx context.Context, sport models.Sport) ([]*models.TeamSnapshot, error) {
	_ = ctx
	p.mu.RLock()
	defer p.mu.RUnlock()

	table, ok := p.bySlug[sport]
	if !ok {
		return nil, nil
	}
	seen := make(map[*models.TeamSnapshot]bool, len(table))
	snaps := make([]*models.TeamSnapshot, 0, len(table)/2)
	for _, snap := range table {
		if !seen[snap] {
			seen[snap] = true
			snaps = append(snaps, snap)
		}
	}
	return snaps, nil
}

// Put registers a snapshot under its name and abbreviation
func (p *TableProvider) Put(snap *models.TeamSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.putLocked(snap)
}

func (p *TableProvider) putLocked(snap *models.TeamSnapshot) {
	table, ok := p.bySlug[snap.Sport]
	if !ok {
		table = make(map[string]*models.TeamSnapshot)
		p.bySlug[snap.Sport] = table
	}
	table[keyFor(snap.Name)] = snap
	if snap.Abbreviation != "" {
		table[keyFor(snap.Abbreviation)] = snap
	}
}

// LoadJSON loads a JSON season table: a flat array of TeamSnapshot objects.
// Replaces existing entries for any sport present in the file.
func (p *TableProvider) LoadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read team table %s: %w", path, err)
	}

	var snaps []*models.TeamSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return fmt.Errorf("failed to parse team table %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, snap := range snaps {
		if !snap.Sport.Valid() {
			return fmt.Errorf("team table %s: team %q has unknown sport %q", path, snap.Name, snap.Sport)
		}
		p.putLocked(snap)
	}

	p.logger.WithFields(logrus.Fields{
		"path":  path,
		"teams": len(snaps),
	}).Info("Loaded JSON team table")
	return nil
}

// LoadCSV loads a CSV season table for one sport. The header row names the
// stat columns; name and abbreviation columns are required.
func (p *TableProvider) LoadCSV(path string, sport models.Sport) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open team table %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse CSV table %s: %w", path, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("team table %s has no data rows", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return fmt.Errorf("team table %s is missing a name column", path)
	}

	loaded := 0
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, row := range rows[1:] {
		snap, err := snapshotFromRow(sport, cols, row)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"path": path,
				"row":  i + 2,
			}).WithError(err).Warn("Skipping malformed team row")
			continue
		}
		p.putLocked(snap)
		loaded++
	}

	p.logger.WithFields(logrus.Fields{
		"path":  path,
		"sport": sport,
		"teams": loaded,
	}).Info("Loaded CSV team table")
	return nil
}

func snapshotFromRow(sport models.Sport, cols map[string]int, row []string) (*models.TeamSnapshot, error) {
	get := func(name string) (float64, error) {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return 0, nil
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		return v, nil
	}
	getStr := func(name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	snap := &models.TeamSnapshot{
		Name:         getStr("name"),
		Abbreviation: getStr("abbreviation"),
		Sport:        sport,
	}
	if snap.Name == "" {
		return nil, fmt.Errorf("empty team name")
	}
	if snap.Abbreviation == "" {
		snap.Abbreviation = getStr("abbr")
	}

	var err error
	read := func(name string) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = get(name)
		return v
	}

	switch sport {
	case models.SportFootball:
		snap.Football = &models.FootballTeamStats{
			PointsFor:     read("points_for"),
			PointsAgainst: read("points_against"),
			OffYards:      read("off_yards"),
			DefYards:      read("def_yards"),
			TurnoverDiff:  read("turnover_diff"),
		}
	case models.SportBasketball:
		snap.Basketball = &models.BasketballTeamStats{
			PointsFor:      read("points_for"),
			PointsAgainst:  read("points_against"),
			FieldGoalPct:   read("field_goal_pct"),
			ReboundMargin:  read("rebound_margin"),
			TurnoverMargin: read("turnover_margin"),
			ThreePtPct:     read("three_pt_pct"),
			Pace:           read("pace"),
		}
	case models.SportHockey:
		snap.Hockey = &models.HockeyTeamStats{
			XGFor:            read("xg_for"),
			XGAgainst:        read("xg_against"),
			GoalieGSAx:       read("goalie_gsax"),
			HighDangerFor:    read("high_danger_for"),
			PowerPlayPct:     read("power_play_pct"),
			PenaltyKillPct:   read("penalty_kill_pct"),
			TimesShorthanded: read("times_shorthanded"),
		}
	default:
		return nil, fmt.Errorf("unsupported sport %q", sport)
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

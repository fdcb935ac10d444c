package teams

import (
	"strconv"
	"strings"

	"github.com/ceddto100/edgeline/internal/models"
)

// Argument synonym groups accepted by tool callers. All aliases funnel
// through NormalizeMatchupArgs before validation; handlers never chain
// fallbacks themselves.
var (
	teamAAliases = []string{"team_a", "teamA", "team", "home_team", "favorite", "team_favorite"}
	teamBAliases = []string{"team_b", "teamB", "opponent", "away_team", "underdog", "team_underdog"}
	lineAliases  = []string{"line", "spread", "total", "market_line"}
	sportAliases = []string{"sport", "league"}
	venueAliases = []string{"venue", "location", "site"}
)

// ArgBag is an untyped bag of optional named tool arguments
type ArgBag map[string]interface{}

// NormalizeMatchupArgs maps a bag of aliased inputs onto a canonical
// MatchupRequest. Missing venue defaults to neutral; the caller decides
// whether that default counts as an assumption.
func NormalizeMatchupArgs(args ArgBag) (*models.MatchupRequest, *models.DomainError) {
	req := &models.MatchupRequest{Venue: models.VenueNeutral}

	if s, ok := firstString(args, sportAliases); ok {
		sport, err := models.ParseSport(strings.ToLower(s))
		if err != nil {
			return nil, models.NewDomainError(models.ErrCodeInvalidInput, "unknown sport %q", s)
		}
		req.Sport = sport
	}
	if s, ok := firstString(args, teamAAliases); ok {
		req.TeamA = strings.TrimSpace(s)
	}
	if s, ok := firstString(args, teamBAliases); ok {
		req.TeamB = strings.TrimSpace(s)
	}
	if v, ok := firstNumber(args, lineAliases); ok {
		req.Line = v
	}
	if s, ok := firstString(args, venueAliases); ok {
		venue := models.Venue(strings.ToLower(strings.TrimSpace(s)))
		if !venue.Valid() {
			return nil, models.NewDomainError(models.ErrCodeInvalidInput, "unknown venue %q", s)
		}
		req.Venue = venue
	}

	if req.TeamA == "" || req.TeamB == "" {
		return nil, models.NewDomainError(models.ErrCodeInvalidInput, "both teams are required")
	}
	return req, nil
}

func firstString(args ArgBag, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if raw, ok := args[alias]; ok {
			if s, ok := raw.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func firstNumber(args ArgBag, aliases []string) (float64, bool) {
	for _, alias := range aliases {
		raw, ok := args[alias]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

package workflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ceddto100/edgeline/internal/models"
)

// ParsedMatchup is the outcome of free-text matchup extraction. Team names
// are raw tokens; resolution against the stats provider happens downstream.
type ParsedMatchup struct {
	Sport         models.Sport `json:"sport"`
	TeamA         string       `json:"team_a"`
	TeamB         string       `json:"team_b"`
	Pick          string       `json:"pick"`
	Spread        float64      `json:"spread"`
	Venue         models.Venue `json:"venue"`
	VenueExplicit bool         `json:"venue_explicit"`
	SportExplicit bool         `json:"sport_explicit"`
}

var (
	// sportPrefixes map a leading league tag ("NBA: ...") or keyword to a sport
	sportPrefixes = map[string]models.Sport{
		"nba": models.SportBasketball, "ncaab": models.SportBasketball, "basketball": models.SportBasketball,
		"nfl": models.SportFootball, "ncaaf": models.SportFootball, "football": models.SportFootball,
		"nhl": models.SportHockey, "hockey": models.SportHockey,
	}

	separatorPattern = regexp.MustCompile(`(?i)\s+(vs\.?|at|@|versus)\s+`)
	spreadPattern    = regexp.MustCompile(`([A-Za-z][A-Za-z .'&-]*?)\s+([+-]\d+(?:\.\d+)?)`)
	totalPattern     = regexp.MustCompile(`(?i)\b(?:over|under|o/u)\s+(\d+(?:\.\d+)?)`)
	bareLinePattern  = regexp.MustCompile(`([+-]\d+(?:\.\d+)?)`)
	pickPattern      = regexp.MustCompile(`(?i)\b(?:taking|take|pick(?:ing)?|backing|back)\s+(?:the\s+)?([A-Za-z][A-Za-z .'&-]*)`)
)

// ParseMatchupText extracts a matchup from free text. This is the one
// workflow step whose failure aborts the run: without two teams and a
// spread nothing downstream is computable, so errors here propagate
// instead of becoming structured step results.
//
// Accepted shapes include:
//
//	"NBA: Heat vs Hawks, Hawks -3.5, taking Hawks"
//	"Chiefs at Bills -6.5"
//	"NHL: Rangers vs Bruins over 6.5"  (totals use the bare line)
//
// The returned spread is normalized to the picked team: a spread quoted
// for the favorite flips positive when the caller is taking the underdog.
func ParseMatchupText(text string) (*ParsedMatchup, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil, fmt.Errorf("empty matchup text")
	}

	parsed := &ParsedMatchup{Venue: models.VenueNeutral}

	working := detectSport(raw, parsed)

	loc := separatorPattern.FindStringSubmatchIndex(working)
	if loc == nil {
		return nil, fmt.Errorf("could not find a team separator (vs/at/@) in %q", text)
	}
	separator := strings.ToLower(strings.TrimSpace(working[loc[2]:loc[3]]))
	left := strings.TrimSpace(working[:loc[0]])
	right := strings.TrimSpace(working[loc[1]:])

	// "A at B" / "A @ B" places team A on the road
	if separator == "at" || separator == "@" {
		parsed.Venue = models.VenueAway
		parsed.VenueExplicit = true
	}

	parsed.TeamA = cleanTeamToken(left)
	if parsed.TeamA == "" {
		return nil, fmt.Errorf("could not extract the first team from %q", text)
	}

	// The right side carries team B plus optional spread/pick clauses
	rightParts := strings.SplitN(right, ",", 2)
	parsed.TeamB = cleanTeamToken(rightParts[0])
	if parsed.TeamB == "" {
		return nil, fmt.Errorf("could not extract the second team from %q", text)
	}

	spreadTeam, spread, found := extractSpread(working)
	if !found {
		return nil, fmt.Errorf("no spread found in %q; a signed line like -3.5 is required", text)
	}
	parsed.Spread = spread

	if m := pickPattern.FindStringSubmatch(working); m != nil {
		parsed.Pick = cleanTeamToken(m[1])
	}
	if parsed.Pick == "" {
		// Default to whichever team the spread was quoted against
		if spreadTeam != "" {
			parsed.Pick = spreadTeam
		} else {
			parsed.Pick = parsed.TeamA
		}
	}

	// Normalize spread sign to the picked team: a line quoted for the
	// other side flips.
	if spreadTeam != "" && !sameTeamToken(parsed.Pick, spreadTeam) {
		parsed.Spread = -parsed.Spread
	}

	detectVenueKeywords(working, parsed)

	return parsed, nil
}

// detectSport strips a leading league tag and scans for sport keywords
func detectSport(text string, parsed *ParsedMatchup) string {
	working := text
	if idx := strings.Index(working, ":"); idx > 0 && idx < 12 {
		tag := strings.ToLower(strings.TrimSpace(working[:idx]))
		if sport, ok := sportPrefixes[tag]; ok {
			parsed.Sport = sport
			parsed.SportExplicit = true
			working = strings.TrimSpace(working[idx+1:])
			return working
		}
	}
	lower := strings.ToLower(working)
	for keyword, sport := range sportPrefixes {
		if strings.Contains(lower, keyword) {
			parsed.Sport = sport
			parsed.SportExplicit = true
			break
		}
	}
	return working
}

// extractSpread finds the first signed number and the team token quoted
// directly before it, if any
func extractSpread(text string) (team string, spread float64, found bool) {
	if m := spreadPattern.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[2], 64)
		if err == nil {
			// Keep only the token after "A vs B": the team the line is
			// quoted against sits directly before the number
			segs := separatorPattern.Split(m[1], -1)
			return cleanTeamToken(segs[len(segs)-1]), v, true
		}
	}
	if m := totalPattern.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return "", v, true
		}
	}
	if m := bareLinePattern.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return "", v, true
		}
	}
	return "", 0, false
}

func detectVenueKeywords(text string, parsed *ParsedMatchup) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "neutral"):
		parsed.Venue = models.VenueNeutral
		parsed.VenueExplicit = true
	case strings.Contains(lower, "at home") || strings.Contains(lower, "home game"):
		parsed.Venue = models.VenueHome
		parsed.VenueExplicit = true
	case strings.Contains(lower, "on the road") || strings.Contains(lower, "away game"):
		parsed.Venue = models.VenueAway
		parsed.VenueExplicit = true
	}
}

// cleanTeamToken trims punctuation, league tags, and trailing clauses from
// a candidate team token
func cleanTeamToken(token string) string {
	token = strings.TrimSpace(token)
	// Drop anything after a comma: "Hawks -3.5, taking Hawks"
	if idx := strings.Index(token, ","); idx >= 0 {
		token = token[:idx]
	}
	// Drop a trailing signed number or total clause: "Hawks -3.5", "over 6.5"
	token = bareLinePattern.ReplaceAllString(token, "")
	token = totalPattern.ReplaceAllString(token, "")
	token = strings.Trim(token, " .,:;-")
	// Drop a leading league tag remnant
	fields := strings.Fields(token)
	if len(fields) > 1 {
		if _, ok := sportPrefixes[strings.ToLower(fields[0])]; ok {
			fields = fields[1:]
		}
	}
	return strings.Join(fields, " ")
}

// sameTeamToken compares two raw tokens loosely (case-insensitive, either
// containing the other)
func sameTeamToken(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return la == lb || strings.Contains(la, lb) || strings.Contains(lb, la)
}

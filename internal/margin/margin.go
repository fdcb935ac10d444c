// Package margin implements the sport-specific linear models that turn two
// teams' season statistics into a predicted scoring margin (or, for hockey,
// a predicted goal total). All functions are pure: no I/O, no randomness,
// identical inputs always produce identical outputs.
package margin

import "github.com/ceddto100/edgeline/internal/models"

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// venueAdjustment returns the home advantage in points for team A
func venueAdjustment(venue models.Venue, homeEdge float64) float64 {
	switch venue {
	case models.VenueHome:
		return homeEdge
	case models.VenueAway:
		return -homeEdge
	default:
		return 0
	}
}

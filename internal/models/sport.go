package models

import "fmt"

// Sport identifies which margin model and variance constants apply
type Sport string

const (
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportHockey     Sport = "hockey"
)

// ParseSport converts a string to a Sport, accepting common league names
func ParseSport(s string) (Sport, error) {
	switch s {
	case "football", "nfl", "ncaaf", "NFL", "NCAAF":
		return SportFootball, nil
	case "basketball", "nba", "ncaab", "NBA", "NCAAB":
		return SportBasketball, nil
	case "hockey", "nhl", "NHL":
		return SportHockey, nil
	}
	return "", fmt.Errorf("unknown sport: %q", s)
}

// Valid reports whether the sport is one of the supported values
func (s Sport) Valid() bool {
	switch s {
	case SportFootball, SportBasketball, SportHockey:
		return true
	}
	return false
}

// Venue represents where the matchup is played, from the perspective of team A
type Venue string

const (
	VenueHome    Venue = "home"
	VenueAway    Venue = "away"
	VenueNeutral Venue = "neutral"
)

// Valid reports whether the venue is one of the supported values
func (v Venue) Valid() bool {
	switch v {
	case VenueHome, VenueAway, VenueNeutral:
		return true
	}
	return false
}

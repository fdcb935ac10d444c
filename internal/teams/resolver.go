package teams

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/ceddto100/edgeline/internal/models"
)

// DefaultMatchThreshold is the minimum Dice similarity accepted when no
// exact match exists. Heuristic policy; override via ResolverConfig.
const DefaultMatchThreshold = 0.6

const maxSuggestions = 5

// ResolverConfig tunes fuzzy matching
type ResolverConfig struct {
	MatchThreshold float64
}

// Resolver maps free-text team tokens to canonical snapshots held by a
// Provider. Resolution order: exact case-insensitive match on full name or
// abbreviation, then bigram similarity over {name, abbreviation, last word
// of name}, then substring containment in either direction.
type Resolver struct {
	provider  Provider
	threshold float64
	logger    *logrus.Logger
}

// NewResolver creates a resolver over the given provider
func NewResolver(provider Provider, cfg ResolverConfig, logger *logrus.Logger) *Resolver {
	threshold := cfg.MatchThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultMatchThreshold
	}
	return &Resolver{provider: provider, threshold: threshold, logger: logger}
}

// Resolve finds the snapshot for a free-text team token. A failed
// resolution returns a team_not_found domain error carrying up to five
// nearest-scoring suggestions; it never guesses silently.
func (r *Resolver) Resolve(ctx context.Context, sport models.Sport, query string) (*models.TeamSnapshot, error) {
	q := keyFor(query)
	if q == "" {
		return nil, models.NewDomainError(models.ErrCodeTeamNotFound, "empty team name")
	}

	// Exact name/abbreviation match short-circuits
	if snap, err := r.provider.Lookup(ctx, sport, query); err == nil {
		return snap, nil
	}

	all, err := r.provider.All(ctx, sport)
	if err != nil {
		return nil, err
	}

	type scored struct {
		snap  *models.TeamSnapshot
		score float64
	}
	best := make([]scored, 0, len(all))
	for _, snap := range all {
		score := 0.0
		for _, candidate := range candidateStrings(snap) {
			if s := diceCoefficient(q, candidate); s > score {
				score = s
			}
		}
		best = append(best, scored{snap: snap, score: score})
	}
	sort.SliceStable(best, func(i, j int) bool { return best[i].score > best[j].score })

	if len(best) > 0 && best[0].score >= r.threshold {
		r.logger.WithFields(logrus.Fields{
			"query": query,
			"match": best[0].snap.Name,
			"score": best[0].score,
		}).Debug("Fuzzy team match accepted")
		return best[0].snap, nil
	}

	// Substring containment fallback, either direction
	for _, snap := range all {
		for _, candidate := range candidateStrings(snap) {
			if strings.Contains(candidate, q) || strings.Contains(q, candidate) {
				return snap, nil
			}
		}
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, s := range best {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, s.snap.Name)
	}
	return nil, models.NewDomainError(models.ErrCodeTeamNotFound, "no team matching %q", query).
		WithDetail("searched", query).
		WithDetail("suggestions", suggestions)
}

// candidateStrings returns the normalized match candidates for a snapshot:
// full name, abbreviation, and the last word of the name (so "Lakers"
// resolves "Los Angeles Lakers").
func candidateStrings(snap *models.TeamSnapshot) []string {
	candidates := []string{keyFor(snap.Name)}
	if snap.Abbreviation != "" {
		candidates = append(candidates, keyFor(snap.Abbreviation))
	}
	words := strings.Fields(keyFor(snap.Name))
	if len(words) > 1 {
		candidates = append(candidates, words[len(words)-1])
	}
	return candidates
}

// keyFor lowercases, strips diacritics, and collapses whitespace
func keyFor(s string) string {
	s = stripDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// diceCoefficient scores two strings by shared character bigrams,
// normalized to [0,1]
func diceCoefficient(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) < 2 || len(b) < 2 {
		return 0.0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}
	matches := 0
	for i := 0; i < len(b)-1; i++ {
		bg := b[i : i+2]
		if bigrams[bg] > 0 {
			bigrams[bg]--
			matches++
		}
	}
	return 2.0 * float64(matches) / float64(len(a)+len(b)-2)
}

// Package estimator validates team statistics and runs the margin model
// plus probability engine for one matchup. Validation happens before any
// derived computation; out-of-range stats are reported as invalid_input.
package estimator

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ceddto100/edgeline/internal/margin"
	"github.com/ceddto100/edgeline/internal/models"
	"github.com/ceddto100/edgeline/internal/probability"
	"github.com/ceddto100/edgeline/internal/teams"
)

// Estimator produces probability estimates from stat snapshots or resolved
// team names
type Estimator struct {
	resolver *teams.Resolver
	validate *validator.Validate
	logger   *logrus.Logger
}

// New creates an estimator. The resolver may be nil if only the direct
// stat-based entry points are used.
func New(resolver *teams.Resolver, logger *logrus.Logger) *Estimator {
	return &Estimator{
		resolver: resolver,
		validate: validator.New(),
		logger:   logger,
	}
}

// Football estimates the cover probability for team A against the spread.
// The spread is quoted from team A's perspective (negative when favored).
func (e *Estimator) Football(team, opp models.FootballTeamStats, spread float64, venue models.Venue) (*models.ProbabilityEstimate, *models.DomainError) {
	if err := e.checkStats(team); err != nil {
		return nil, err
	}
	if err := e.checkStats(opp); err != nil {
		return nil, err
	}
	if err := checkSpread(spread); err != nil {
		return nil, err
	}

	predicted := margin.Football(team, opp, venue)
	estimate := &models.ProbabilityEstimate{
		Sport:            models.SportFootball,
		PredictedMargin:  predicted,
		Line:             spread,
		Sigma:            probability.SigmaFootball,
		CoverProbability: probability.CoverProbability(predicted, spread, probability.SigmaFootball),
		Confidence:       probability.FootballConfidence(team, opp),
	}
	e.logEstimate(estimate)
	return estimate, nil
}

// Basketball estimates the cover probability for team A against the spread
func (e *Estimator) Basketball(team, opp models.BasketballTeamStats, spread float64, venue models.Venue) (*models.ProbabilityEstimate, *models.DomainError) {
	if err := e.checkStats(team); err != nil {
		return nil, err
	}
	if err := e.checkStats(opp); err != nil {
		return nil, err
	}
	if err := checkSpread(spread); err != nil {
		return nil, err
	}

	predicted := margin.Basketball(team, opp, venue)
	estimate := &models.ProbabilityEstimate{
		Sport:            models.SportBasketball,
		PredictedMargin:  predicted,
		Line:             spread,
		Sigma:            probability.SigmaBasketball,
		CoverProbability: probability.CoverProbability(predicted, spread, probability.SigmaBasketball),
		Confidence:       probability.BasketballConfidence(team, opp),
	}
	e.logEstimate(estimate)
	return estimate, nil
}

// HockeyTotal estimates the over probability for a goal total line and
// returns the model's step-by-step breakdown alongside the estimate.
func (e *Estimator) HockeyTotal(home, away models.HockeyTeamStats, line float64) (*models.ProbabilityEstimate, *margin.HockeyBreakdown, *models.DomainError) {
	if err := e.checkStats(home); err != nil {
		return nil, nil, err
	}
	if err := e.checkStats(away); err != nil {
		return nil, nil, err
	}
	if err := checkSpread(line); err != nil {
		return nil, nil, err
	}

	total, breakdown := margin.HockeyTotal(home, away)
	estimate := &models.ProbabilityEstimate{
		Sport:            models.SportHockey,
		PredictedTotal:   total,
		Line:             line,
		Sigma:            probability.TotalSigma(total),
		CoverProbability: probability.OverProbability(total, line),
		Confidence:       probability.HockeyConfidence(home, away),
	}
	e.logEstimate(estimate)
	return estimate, &breakdown, nil
}

// Matchup resolves both team names and estimates team A's cover
// probability for the request's line. Hockey requests treat the line as a
// goal total with team A as the home side.
func (e *Estimator) Matchup(ctx context.Context, req *models.MatchupRequest) (*models.ProbabilityEstimate, *models.DomainError) {
	snapA, snapB, derr := e.resolvePair(ctx, req.Sport, req.TeamA, req.TeamB)
	if derr != nil {
		return nil, derr
	}
	return e.fromSnapshots(snapA, snapB, req.Line, req.Venue)
}

// CoverPairByName resolves a favorite and an underdog and returns their
// cover probabilities as fractions summing to exactly 1.00. The spread is
// quoted for the favorite and must be negative.
func (e *Estimator) CoverPairByName(ctx context.Context, sport models.Sport, favorite, underdog string, spread float64) (fav, dog float64, derr *models.DomainError) {
	if spread >= 0 {
		return 0, 0, models.NewDomainError(models.ErrCodeInvalidInput,
			"favorite spread must be negative (got %g)", spread)
	}
	snapFav, snapDog, derr := e.resolvePair(ctx, sport, favorite, underdog)
	if derr != nil {
		return 0, 0, derr
	}

	estimate, derr := e.fromSnapshots(snapFav, snapDog, spread, models.VenueNeutral)
	if derr != nil {
		return 0, 0, derr
	}
	fav, dog = probability.CoverPair(estimate.PredictedMargin, spread, estimate.Sigma)
	return fav, dog, nil
}

func (e *Estimator) resolvePair(ctx context.Context, sport models.Sport, nameA, nameB string) (*models.TeamSnapshot, *models.TeamSnapshot, *models.DomainError) {
	if e.resolver == nil {
		return nil, nil, models.NewDomainError(models.ErrCodeInsufficientData, "no stats provider configured")
	}
	snapA, err := e.resolver.Resolve(ctx, sport, nameA)
	if err != nil {
		return nil, nil, asDomain(err)
	}
	snapB, err := e.resolver.Resolve(ctx, sport, nameB)
	if err != nil {
		return nil, nil, asDomain(err)
	}
	return snapA, snapB, nil
}

// fromSnapshots dispatches on sport over resolved snapshots
func (e *Estimator) fromSnapshots(snapA, snapB *models.TeamSnapshot, line float64, venue models.Venue) (*models.ProbabilityEstimate, *models.DomainError) {
	if !snapA.Complete() {
		return nil, incompleteErr(snapA)
	}
	if !snapB.Complete() {
		return nil, incompleteErr(snapB)
	}

	switch snapA.Sport {
	case models.SportFootball:
		return e.Football(*snapA.Football, *snapB.Football, line, venue)
	case models.SportBasketball:
		return e.Basketball(*snapA.Basketball, *snapB.Basketball, line, venue)
	case models.SportHockey:
		estimate, _, derr := e.HockeyTotal(*snapA.Hockey, *snapB.Hockey, line)
		return estimate, derr
	}
	return nil, models.NewDomainError(models.ErrCodeInvalidInput, "unsupported sport %q", snapA.Sport)
}

func (e *Estimator) checkStats(stats interface{}) *models.DomainError {
	if err := e.validate.Struct(stats); err != nil {
		return models.NewDomainError(models.ErrCodeInvalidInput, "stats out of range: %v", err)
	}
	return nil
}

func (e *Estimator) logEstimate(est *models.ProbabilityEstimate) {
	e.logger.WithFields(logrus.Fields{
		"sport":       est.Sport,
		"margin":      est.PredictedMargin,
		"total":       est.PredictedTotal,
		"line":        est.Line,
		"probability": est.CoverProbability,
		"confidence":  est.Confidence,
	}).Debug("Probability estimate computed")
}

func checkSpread(line float64) *models.DomainError {
	if line < -100 || line > 100 {
		return models.NewDomainError(models.ErrCodeInvalidInput, "line out of range: %g", line)
	}
	return nil
}

func incompleteErr(snap *models.TeamSnapshot) *models.DomainError {
	return models.NewDomainError(models.ErrCodeInsufficientData,
		"team %q resolved but required stat fields are missing", snap.Name).
		WithDetail("team", snap.Name)
}

func asDomain(err error) *models.DomainError {
	if de, ok := models.AsDomainError(err); ok {
		return de
	}
	return models.NewDomainError(models.ErrCodeInsufficientData, "stats lookup failed: %v", err)
}

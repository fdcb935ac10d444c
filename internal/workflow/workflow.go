// Package workflow sequences the full estimation pipeline: parse a
// free-text matchup, estimate the cover probability, resolve odds, size
// the stake, and optionally log the bet, recording every default it had
// to assume along the way.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ceddto100/edgeline/internal/estimator"
	"github.com/ceddto100/edgeline/internal/logger"
	"github.com/ceddto100/edgeline/internal/metrics"
	"github.com/ceddto100/edgeline/internal/models"
	"github.com/ceddto100/edgeline/internal/repository"
	"github.com/ceddto100/edgeline/internal/staking"
)

// Workflow defaults applied when the caller leaves a knob unset. Each
// applied default appends a human-readable assumption to the result.
const (
	DefaultBankroll = 1000.0
	DefaultSport    = models.SportFootball
)

// Defaults carries the configured fallback staking knobs. Zero fields fall
// back to the package constants.
type Defaults struct {
	Bankroll      float64
	KellyFraction float64
}

// Options carries the caller-tunable knobs for one orchestration run.
// Zero values mean "use the default and record an assumption".
type Options struct {
	SessionID     string
	Bankroll      float64
	AmericanOdds  float64
	KellyFraction float64
	TeamAStats    *models.TeamSnapshot
	TeamBStats    *models.TeamSnapshot
	LogBet        bool
	ActualWager   float64
	Notes         string
}

// Step1Parsing holds the outcome of free-text extraction
type Step1Parsing struct {
	Success bool           `json:"success"`
	Parsed  *ParsedMatchup `json:"parsed,omitempty"`
}

// Step2Probability holds the estimation outcome
type Step2Probability struct {
	Success      bool                        `json:"success"`
	Estimate     *models.ProbabilityEstimate `json:"estimate,omitempty"`
	VenueAssumed bool                        `json:"venue_assumed"`
	StatsSource  string                      `json:"stats_source,omitempty"`
	Error        *models.DomainError         `json:"error,omitempty"`
}

// Step3Odds holds the resolved market odds
type Step3Odds struct {
	Success      bool    `json:"success"`
	AmericanOdds float64 `json:"american_odds"`
	OddsAssumed  bool    `json:"odds_assumed"`
}

// Step4Kelly holds the stake sizing outcome
type Step4Kelly struct {
	Success        bool                `json:"success"`
	Stake          *models.KellyStake  `json:"stake,omitempty"`
	Recommendation string              `json:"recommendation,omitempty"`
	Error          *models.DomainError `json:"error,omitempty"`
}

// Step5Logging holds the best-effort bet logging outcome. Its failure
// never fails the overall workflow.
type Step5Logging struct {
	Success bool      `json:"success"`
	BetID   uuid.UUID `json:"bet_id,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Summary pairs a human narrative with a structured digest of the run
type Summary struct {
	Human string      `json:"human"`
	Data  SummaryData `json:"data"`
}

// SummaryData is the machine-readable digest of a completed run
type SummaryData struct {
	Sport          models.Sport      `json:"sport"`
	Matchup        string            `json:"matchup"`
	Pick           string            `json:"pick"`
	Spread         float64           `json:"spread"`
	Probability    float64           `json:"probability"`
	Confidence     models.Confidence `json:"confidence"`
	Odds           float64           `json:"odds"`
	Edge           float64           `json:"edge"`
	HasValue       bool              `json:"has_value"`
	Stake          float64           `json:"recommended_stake"`
	StakePct       float64           `json:"stake_percentage"`
	BetLogged      bool              `json:"bet_logged"`
	AssumptionsLen int               `json:"assumptions_count"`
}

// Result is the full workflow output: every step's partial result, the
// accumulated assumptions, a two-form summary, and the raw input for
// traceability.
type Result struct {
	Success     bool              `json:"success"`
	RawInput    string            `json:"raw_input"`
	Parsing     *Step1Parsing     `json:"step1_parsing"`
	Probability *Step2Probability `json:"step2_probability,omitempty"`
	Odds        *Step3Odds        `json:"step3_odds,omitempty"`
	Kelly       *Step4Kelly       `json:"step4_kelly,omitempty"`
	Logging     *Step5Logging     `json:"step5_logging,omitempty"`
	Assumptions []string          `json:"assumptions"`
	Summary     Summary           `json:"summary"`
}

// Orchestrator runs the five-step pipeline. Steps 1-4 are synchronous and
// pure apart from stats lookups; step 5 is best-effort I/O through the
// injected bet store.
type Orchestrator struct {
	estimator *estimator.Estimator
	store     repository.BetStore
	defaults  Defaults
	logger    *logrus.Logger
	wlog      *logger.WorkflowLogger
}

// NewOrchestrator creates a workflow orchestrator. The store may be nil
// when bet logging is not wired; LogBet requests then record a step 5
// failure without failing the run.
func NewOrchestrator(est *estimator.Estimator, store repository.BetStore, defaults Defaults, log *logrus.Logger) *Orchestrator {
	if defaults.Bankroll == 0 {
		defaults.Bankroll = DefaultBankroll
	}
	if defaults.KellyFraction == 0 {
		defaults.KellyFraction = staking.DefaultKellyFraction
	}
	return &Orchestrator{
		estimator: est,
		store:     store,
		defaults:  defaults,
		logger:    log,
		wlog:      logger.NewWorkflowLogger(log),
	}
}

// Run executes the pipeline over free text. Only a step 1 parse failure
// returns an error; every later business failure is captured in the
// result with Success=false (or, for logging, swallowed entirely).
func (o *Orchestrator) Run(ctx context.Context, text string, opts Options) (*Result, error) {
	start := time.Now()
	metrics.OrchestrationsTotal.Inc()
	defer func() {
		metrics.OrchestrationDuration.Observe(time.Since(start).Seconds())
	}()

	result := &Result{
		RawInput:    text,
		Assumptions: []string{},
	}

	// Step 1: parse. Aborts the workflow on failure.
	parsed, err := ParseMatchupText(text)
	if err != nil {
		metrics.OrchestrationFailuresTotal.WithLabelValues("parse").Inc()
		return nil, fmt.Errorf("matchup parse failed: %w", err)
	}
	if parsed.Sport == "" {
		parsed.Sport = DefaultSport
		result.Assumptions = append(result.Assumptions,
			fmt.Sprintf("Sport assumed as %s (no league detected)", DefaultSport))
	}
	result.Parsing = &Step1Parsing{Success: true, Parsed: parsed}

	o.wlog.LogParse(text, string(parsed.Sport), parsed.TeamA, parsed.TeamB, parsed.Pick, parsed.Spread)

	// Step 2: probability estimate
	step2 := o.estimate(ctx, parsed, opts, result)
	result.Probability = step2
	if !step2.Success {
		metrics.OrchestrationFailuresTotal.WithLabelValues("probability").Inc()
		o.wlog.LogStepFailure(opts.SessionID, "probability", step2.Error.Message)
		result.Summary = o.summarize(result, parsed)
		return result, nil
	}
	metrics.EstimationsTotal.WithLabelValues(string(parsed.Sport)).Inc()
	o.wlog.LogEstimation(string(parsed.Sport), parsed.TeamA, parsed.TeamB,
		step2.Estimate.PredictedMargin, step2.Estimate.CoverProbability, string(step2.Estimate.Confidence))

	// Step 3: odds resolution
	step3 := &Step3Odds{Success: true, AmericanOdds: opts.AmericanOdds}
	if opts.AmericanOdds == 0 {
		step3.AmericanOdds = staking.StandardJuice
		step3.OddsAssumed = true
		result.Assumptions = append(result.Assumptions,
			fmt.Sprintf("Odds assumed as %g (standard juice)", staking.StandardJuice))
	}
	result.Odds = step3

	// Step 4: Kelly stake
	step4 := o.kelly(step2.Estimate, step3.AmericanOdds, opts, result)
	result.Kelly = step4
	if !step4.Success {
		metrics.OrchestrationFailuresTotal.WithLabelValues("kelly").Inc()
		o.wlog.LogStepFailure(opts.SessionID, "kelly", step4.Error.Message)
		result.Summary = o.summarize(result, parsed)
		return result, nil
	}
	metrics.KellyCalculationsTotal.Inc()

	// Step 5: optional best-effort bet logging. A caller-applied timeout
	// that fires before this point simply means the bet was never logged.
	if opts.LogBet {
		result.Logging = o.logBet(ctx, parsed, step2, step3, step4, opts)
	}

	result.Success = true
	result.Summary = o.summarize(result, parsed)
	o.wlog.LogRunCompleted(opts.SessionID, result.Assumptions, float64(time.Since(start).Milliseconds()))
	return result, nil
}

// estimate runs step 2 with either provider-resolved stats or caller
// overrides
func (o *Orchestrator) estimate(ctx context.Context, parsed *ParsedMatchup, opts Options, result *Result) *Step2Probability {
	step := &Step2Probability{}

	venue := parsed.Venue
	if !parsed.VenueExplicit {
		step.VenueAssumed = true
		result.Assumptions = append(result.Assumptions, "Venue assumed neutral (not stated)")
	}

	// Spread relative to the picked team; the estimate is computed for
	// the pick's side of the matchup.
	teamA, teamB := parsed.TeamA, parsed.TeamB
	statsA, statsB := opts.TeamAStats, opts.TeamBStats
	if sameTeamToken(parsed.Pick, parsed.TeamB) {
		teamA, teamB = teamB, teamA
		statsA, statsB = statsB, statsA
		venue = flipVenue(venue)
	}

	var estimate *models.ProbabilityEstimate
	var derr *models.DomainError
	if statsA != nil && statsB != nil {
		step.StatsSource = "override"
		estimate, derr = o.estimateFromOverrides(statsA, statsB, parsed.Spread, venue)
	} else {
		step.StatsSource = "provider"
		req := &models.MatchupRequest{
			Sport: parsed.Sport,
			TeamA: teamA,
			TeamB: teamB,
			Line:  parsed.Spread,
			Venue: venue,
		}
		estimate, derr = o.estimator.Matchup(ctx, req)
	}
	if derr != nil {
		if derr.Code == models.ErrCodeTeamNotFound {
			metrics.TeamResolutionMissesTotal.Inc()
		}
		step.Error = derr
		return step
	}

	step.Success = true
	step.Estimate = estimate
	return step
}

func (o *Orchestrator) estimateFromOverrides(statsA, statsB *models.TeamSnapshot, spread float64, venue models.Venue) (*models.ProbabilityEstimate, *models.DomainError) {
	switch {
	case statsA.Football != nil && statsB.Football != nil:
		return o.estimator.Football(*statsA.Football, *statsB.Football, spread, venue)
	case statsA.Basketball != nil && statsB.Basketball != nil:
		return o.estimator.Basketball(*statsA.Basketball, *statsB.Basketball, spread, venue)
	case statsA.Hockey != nil && statsB.Hockey != nil:
		estimate, _, derr := o.estimator.HockeyTotal(*statsA.Hockey, *statsB.Hockey, spread)
		return estimate, derr
	}
	return nil, models.NewDomainError(models.ErrCodeInsufficientData,
		"override stats are missing or mismatched between teams")
}

// kelly runs step 4 with defaulted bankroll and fraction
func (o *Orchestrator) kelly(estimate *models.ProbabilityEstimate, odds float64, opts Options, result *Result) *Step4Kelly {
	step := &Step4Kelly{}

	bankroll := opts.Bankroll
	if bankroll == 0 {
		bankroll = o.defaults.Bankroll
		result.Assumptions = append(result.Assumptions,
			fmt.Sprintf("Bankroll defaulted to %g", bankroll))
	}
	fraction := opts.KellyFraction
	if fraction == 0 {
		fraction = o.defaults.KellyFraction
		note := fmt.Sprintf("Kelly fraction defaulted to %g", fraction)
		if fraction == 0.5 {
			note += " (half Kelly)"
		}
		result.Assumptions = append(result.Assumptions, note)
	}

	stake, derr := staking.Calculate(bankroll, odds, estimate.CoverProbability, fraction)
	if derr != nil {
		step.Error = derr
		return step
	}

	step.Success = true
	step.Stake = stake
	step.Recommendation = recommendation(stake)
	return step
}

// logBet runs step 5. Failures are captured in the step result and never
// propagate; logging is best-effort.
func (o *Orchestrator) logBet(ctx context.Context, parsed *ParsedMatchup, step2 *Step2Probability, step3 *Step3Odds, step4 *Step4Kelly, opts Options) *Step5Logging {
	step := &Step5Logging{}

	if o.store == nil {
		step.Error = "no bet store configured"
		o.wlog.LogStepFailure(opts.SessionID, "logging", step.Error)
		return step
	}

	wager := opts.ActualWager
	if wager == 0 {
		wager = step4.Stake.Stake
	}

	record := &models.BetRecord{
		ID:                 uuid.New(),
		Sport:              parsed.Sport,
		TeamA:              parsed.TeamA,
		TeamB:              parsed.TeamB,
		Pick:               parsed.Pick,
		Spread:             parsed.Spread,
		Probability:        step2.Estimate.CoverProbability,
		Odds:               step3.AmericanOdds,
		Bankroll:           step4.Stake.Bankroll,
		RecommendedStake:   step4.Stake.Stake,
		ActualWager:        wager,
		Edge:               step4.Stake.Edge,
		ImpliedProbability: step4.Stake.ImpliedProbability,
		Outcome:            models.BetOutcomePending,
		Notes:              opts.Notes,
	}

	if err := o.store.Append(ctx, opts.SessionID, record); err != nil {
		step.Error = err.Error()
		metrics.OrchestrationFailuresTotal.WithLabelValues("logging").Inc()
		o.wlog.LogStepFailure(opts.SessionID, "logging", step.Error)
		return step
	}

	step.Success = true
	step.BetID = record.ID
	metrics.BetsLoggedTotal.Inc()

	o.logger.WithFields(logrus.Fields{
		"bet_id":  record.ID,
		"session": opts.SessionID,
		"stake":   record.ActualWager,
	}).Info("Bet logged")
	return step
}

func recommendation(stake *models.KellyStake) string {
	if !stake.HasValue {
		return fmt.Sprintf(
			"No value at these odds: the model's %.1f%% is below the market's implied %.1f%%. Recommended stake is 0.",
			stake.Probability, stake.ImpliedProbability)
	}
	return fmt.Sprintf(
		"Stake %.2f (%.2f%% of bankroll) at %g. Model edge over the market: %.1f points.",
		stake.Stake, stake.StakePct, stake.AmericanOdds, stake.Edge)
}

func flipVenue(v models.Venue) models.Venue {
	switch v {
	case models.VenueHome:
		return models.VenueAway
	case models.VenueAway:
		return models.VenueHome
	default:
		return models.VenueNeutral
	}
}

package workflow

import (
	"fmt"
	"strings"
)

// summarize renders the human narrative and structured digest for a run.
// It tolerates partially completed runs: whatever steps finished are
// reported, and the failure that stopped the pipeline is named.
func (o *Orchestrator) summarize(result *Result, parsed *ParsedMatchup) Summary {
	data := SummaryData{
		Sport:          parsed.Sport,
		Matchup:        fmt.Sprintf("%s vs %s", parsed.TeamA, parsed.TeamB),
		Pick:           parsed.Pick,
		Spread:         parsed.Spread,
		AssumptionsLen: len(result.Assumptions),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s vs %s, taking %s at %+.1f.",
		strings.ToUpper(string(parsed.Sport)), parsed.TeamA, parsed.TeamB, parsed.Pick, parsed.Spread)

	if result.Probability != nil && result.Probability.Success {
		est := result.Probability.Estimate
		data.Probability = est.CoverProbability
		data.Confidence = est.Confidence
		if est.PredictedTotal > 0 {
			fmt.Fprintf(&b, " Projected total %.2f; %.1f%% to go over the line (%s confidence).",
				est.PredictedTotal, est.CoverProbability, est.Confidence)
		} else {
			fmt.Fprintf(&b, " Predicted margin %+.2f; %.1f%% to cover (%s confidence).",
				est.PredictedMargin, est.CoverProbability, est.Confidence)
		}
	} else if result.Probability != nil && result.Probability.Error != nil {
		fmt.Fprintf(&b, " Probability estimation failed: %s.", result.Probability.Error.Message)
	}

	if result.Odds != nil {
		data.Odds = result.Odds.AmericanOdds
	}

	if result.Kelly != nil && result.Kelly.Success {
		stake := result.Kelly.Stake
		data.Edge = stake.Edge
		data.HasValue = stake.HasValue
		data.Stake = stake.Stake
		data.StakePct = stake.StakePct
		b.WriteString(" " + result.Kelly.Recommendation)
	} else if result.Kelly != nil && result.Kelly.Error != nil {
		fmt.Fprintf(&b, " Stake sizing failed: %s.", result.Kelly.Error.Message)
	}

	if result.Logging != nil {
		data.BetLogged = result.Logging.Success
		if result.Logging.Success {
			fmt.Fprintf(&b, " Bet logged (%s).", result.Logging.BetID)
		} else {
			fmt.Fprintf(&b, " Bet was not logged: %s.", result.Logging.Error)
		}
	}

	if len(result.Assumptions) > 0 {
		fmt.Fprintf(&b, " Assumptions: %s.", strings.Join(result.Assumptions, "; "))
	}

	return Summary{Human: b.String(), Data: data}
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ceddto100/edgeline/internal/models"
	"github.com/ceddto100/edgeline/internal/staking"
	"github.com/ceddto100/edgeline/internal/teams"
	"github.com/ceddto100/edgeline/internal/workflow"
)

type spreadEstimateRequest struct {
	TeamStats     json.RawMessage `json:"team_stats"`
	OpponentStats json.RawMessage `json:"opponent_stats"`
	Spread        float64         `json:"spread"`
	Venue         string          `json:"venue"`
}

type hockeyTotalRequest struct {
	HomeStats models.HockeyTeamStats `json:"home_stats"`
	AwayStats models.HockeyTeamStats `json:"away_stats"`
	Line      float64                `json:"line"`
}

type kellyRequest struct {
	Bankroll      float64  `json:"bankroll"`
	AmericanOdds  float64  `json:"american_odds"`
	Probability   float64  `json:"probability"`
	KellyFraction *float64 `json:"kelly_fraction,omitempty"`
}

type orchestrateRequest struct {
	Text          string  `json:"text"`
	SessionID     string  `json:"session_id,omitempty"`
	Bankroll      float64 `json:"bankroll,omitempty"`
	AmericanOdds  float64 `json:"american_odds,omitempty"`
	KellyFraction float64 `json:"kelly_fraction,omitempty"`
	LogBet        bool    `json:"log_bet,omitempty"`
	ActualWager   float64 `json:"actual_wager,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type outcomeRequest struct {
	Outcome string `json:"outcome"`
}

func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func parseVenue(s string) (models.Venue, error) {
	if s == "" {
		return models.VenueNeutral, nil
	}
	v := models.Venue(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown venue %q", s)
	}
	return v, nil
}

func (s *Server) handleEstimateFootball(w http.ResponseWriter, r *http.Request) {
	var req spreadEstimateRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	venue, err := parseVenue(req.Venue)
	if err != nil {
		writeBadRequest(w, "%v", err)
		return
	}
	var team, opp models.FootballTeamStats
	if err := json.Unmarshal(req.TeamStats, &team); err != nil {
		writeBadRequest(w, "invalid team_stats: %v", err)
		return
	}
	if err := json.Unmarshal(req.OpponentStats, &opp); err != nil {
		writeBadRequest(w, "invalid opponent_stats: %v", err)
		return
	}

	estimate, derr := s.estimator.Football(team, opp, req.Spread, venue)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}
	writeTool(w, estimateNarrative(estimate), map[string]interface{}{
		"estimate":       estimate,
		"team_stats":     team,
		"opponent_stats": opp,
	})
}

func (s *Server) handleEstimateBasketball(w http.ResponseWriter, r *http.Request) {
	var req spreadEstimateRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	venue, err := parseVenue(req.Venue)
	if err != nil {
		writeBadRequest(w, "%v", err)
		return
	}
	var team, opp models.BasketballTeamStats
	if err := json.Unmarshal(req.TeamStats, &team); err != nil {
		writeBadRequest(w, "invalid team_stats: %v", err)
		return
	}
	if err := json.Unmarshal(req.OpponentStats, &opp); err != nil {
		writeBadRequest(w, "invalid opponent_stats: %v", err)
		return
	}

	estimate, derr := s.estimator.Basketball(team, opp, req.Spread, venue)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}
	writeTool(w, estimateNarrative(estimate), map[string]interface{}{
		"estimate":       estimate,
		"team_stats":     team,
		"opponent_stats": opp,
	})
}

func (s *Server) handleEstimateHockeyTotal(w http.ResponseWriter, r *http.Request) {
	var req hockeyTotalRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}

	estimate, breakdown, derr := s.estimator.HockeyTotal(req.HomeStats, req.AwayStats, req.Line)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}
	human := fmt.Sprintf("Projected total %.2f goals against a line of %g: %.1f%% to go over (%s confidence).",
		estimate.PredictedTotal, req.Line, estimate.CoverProbability, estimate.Confidence)
	writeTool(w, human, map[string]interface{}{
		"estimate":  estimate,
		"breakdown": breakdown,
	})
}

// handleProbabilityByName accepts a bag of aliased arguments (favorite or
// home_team or team_a, spread or line, sport or league) and normalizes it
// to a canonical request before validation.
func (s *Server) handleProbabilityByName(w http.ResponseWriter, r *http.Request) {
	var args teams.ArgBag
	if err := decode(r, &args); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	req, derr := teams.NormalizeMatchupArgs(args)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}
	if req.Sport == "" {
		writeBadRequest(w, "sport is required")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBadRequest(w, "invalid matchup: %v", err)
		return
	}

	fav, dog, derr := s.estimator.CoverPairByName(r.Context(), req.Sport, req.TeamA, req.TeamB, req.Line)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}
	human := fmt.Sprintf("%s covers %g about %.0f%% of the time; %s covers %.0f%%.",
		req.TeamA, req.Line, fav*100, req.TeamB, dog*100)
	writeTool(w, human, map[string]interface{}{
		"favorite_cover_probability": fav,
		"underdog_cover_probability": dog,
		"spread":                     req.Line,
	})
}

func (s *Server) handleKellyCalculate(w http.ResponseWriter, r *http.Request) {
	var req kellyRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	fraction := s.defaultFraction
	if req.KellyFraction != nil {
		fraction = *req.KellyFraction
	}

	stake, derr := staking.Calculate(req.Bankroll, req.AmericanOdds, req.Probability, fraction)
	if derr != nil {
		writeDomainError(w, derr)
		return
	}

	human := fmt.Sprintf("No edge at %.1f%% win probability against %+.0f odds; recommended stake is $0.",
		stake.Probability, stake.AmericanOdds)
	if stake.HasValue {
		human = fmt.Sprintf("Edge of %.1f%% at %+.0f odds; stake $%.2f (%.2f%% of bankroll).",
			stake.Edge, stake.AmericanOdds, stake.Stake, stake.StakePct)
	}
	writeTool(w, human, stake)
}

func (s *Server) handleOrchestrate(w http.ResponseWriter, r *http.Request) {
	var req orchestrateRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	if req.Text == "" {
		writeBadRequest(w, "text is required")
		return
	}

	result, err := s.orchestrator.Run(r.Context(), req.Text, workflow.Options{
		SessionID:     req.SessionID,
		Bankroll:      req.Bankroll,
		AmericanOdds:  req.AmericanOdds,
		KellyFraction: req.KellyFraction,
		LogBet:        req.LogBet,
		ActualWager:   req.ActualWager,
		Notes:         req.Notes,
	})
	if err != nil {
		if derr, ok := models.AsDomainError(err); ok {
			writeDomainError(w, derr)
			return
		}
		writeBadRequest(w, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLogBet(w http.ResponseWriter, r *http.Request) {
	var record models.BetRecord
	if err := decode(r, &record); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	if err := s.validate.Struct(&record); err != nil {
		writeBadRequest(w, "invalid bet record: %v", err)
		return
	}

	if err := s.store.Append(r.Context(), record.SessionID, &record); err != nil {
		if derr, ok := models.AsDomainError(err); ok {
			writeDomainError(w, derr)
			return
		}
		writeJSON(w, http.StatusInternalServerError, ToolResponse{Success: false,
			Error: models.NewDomainError(models.ErrCodeInvalidInput, "storing bet: %v", err)})
		return
	}
	writeTool(w, fmt.Sprintf("Logged bet %s for session %s.", record.ID, record.SessionID), record)
}

func (s *Server) handleGetSessionBets(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	records, err := s.store.Get(r.Context(), sessionID)
	if err != nil {
		if derr, ok := models.AsDomainError(err); ok {
			writeDomainError(w, derr)
			return
		}
		writeBadRequest(w, "%v", err)
		return
	}
	writeTool(w, fmt.Sprintf("%d bet(s) on record for session %s.", len(records), sessionID), records)
}

func (s *Server) handleUpdateOutcome(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		writeBadRequest(w, "invalid bet id: %v", err)
		return
	}
	var req outcomeRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	outcome := models.BetOutcome(req.Outcome)
	if !outcome.Valid() {
		writeBadRequest(w, "unknown outcome %q", req.Outcome)
		return
	}

	if err := s.store.UpdateOutcome(r.Context(), id, outcome); err != nil {
		if derr, ok := models.AsDomainError(err); ok {
			writeDomainError(w, derr)
			return
		}
		writeBadRequest(w, "%v", err)
		return
	}

	record, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		if derr, ok := models.AsDomainError(err); ok {
			writeDomainError(w, derr)
			return
		}
		writeBadRequest(w, "%v", err)
		return
	}
	if s.betLogger != nil {
		s.betLogger.LogBetSettled(id.String(), string(outcome), record.ProfitLoss())
	}
	writeTool(w, fmt.Sprintf("Bet %s settled as %s.", id, outcome), record)
}

func estimateNarrative(est *models.ProbabilityEstimate) string {
	return fmt.Sprintf("Predicted margin %+.2f against a line of %g: %.1f%% to cover (%s confidence).",
		est.PredictedMargin, est.Line, est.CoverProbability, est.Confidence)
}

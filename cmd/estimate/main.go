// Package main provides a command line interface to the estimation engine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ceddto100/edgeline/internal/config"
	"github.com/ceddto100/edgeline/internal/estimator"
	"github.com/ceddto100/edgeline/internal/logger"
	"github.com/ceddto100/edgeline/internal/models"
	"github.com/ceddto100/edgeline/internal/repository"
	"github.com/ceddto100/edgeline/internal/staking"
	"github.com/ceddto100/edgeline/internal/teams"
	"github.com/ceddto100/edgeline/internal/workflow"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	est        *estimator.Estimator
	orch       *workflow.Orchestrator
)

var (
	flagBankroll    float64
	flagOdds        float64
	flagProbability float64
	flagFraction    float64
	flagLogBet      bool
	flagSport       string
	flagFavorite    string
	flagUnderdog    string
	flagSpread      float64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	orchestrateCmd.Flags().Float64Var(&flagBankroll, "bankroll", 0, "Bankroll in currency units (default 1000)")
	orchestrateCmd.Flags().Float64Var(&flagOdds, "odds", 0, "American odds (default -110)")
	orchestrateCmd.Flags().Float64Var(&flagFraction, "fraction", 0, "Kelly fraction (default 0.5)")
	orchestrateCmd.Flags().BoolVar(&flagLogBet, "log-bet", false, "Record the bet after sizing")

	kellyCmd.Flags().Float64Var(&flagBankroll, "bankroll", 1000, "Bankroll in currency units")
	kellyCmd.Flags().Float64Var(&flagOdds, "odds", -110, "American odds")
	kellyCmd.Flags().Float64Var(&flagProbability, "probability", 0, "Win probability in percent")
	kellyCmd.Flags().Float64Var(&flagFraction, "fraction", 0.5, "Kelly fraction")
	kellyCmd.MarkFlagRequired("probability")

	matchupCmd.Flags().StringVar(&flagSport, "sport", "", "Sport (football, basketball, hockey)")
	matchupCmd.Flags().StringVar(&flagFavorite, "favorite", "", "Favorite team name")
	matchupCmd.Flags().StringVar(&flagUnderdog, "underdog", "", "Underdog team name")
	matchupCmd.Flags().Float64Var(&flagSpread, "spread", 0, "Favorite spread (negative)")
	matchupCmd.MarkFlagRequired("sport")
	matchupCmd.MarkFlagRequired("favorite")
	matchupCmd.MarkFlagRequired("underdog")
	matchupCmd.MarkFlagRequired("spread")

	rootCmd.AddCommand(orchestrateCmd, kellyCmd, matchupCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Spread probability and Kelly staking from the command line",
	Long:  `Runs the estimation engine locally: free-text orchestration, Kelly sizing, and name-resolved cover probabilities.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return setup()
	},
}

var orchestrateCmd = &cobra.Command{
	Use:   "orchestrate [matchup text]",
	Short: "Run the full parse-estimate-odds-kelly pipeline over free text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := orch.Run(ctx, strings.Join(args, " "), workflow.Options{
			Bankroll:      flagBankroll,
			AmericanOdds:  flagOdds,
			KellyFraction: flagFraction,
			LogBet:        flagLogBet,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var kellyCmd = &cobra.Command{
	Use:   "kelly",
	Short: "Size a stake with the fractional Kelly criterion",
	RunE: func(cmd *cobra.Command, args []string) error {
		stake, derr := staking.Calculate(flagBankroll, flagOdds, flagProbability, flagFraction)
		if derr != nil {
			return derr
		}
		return printJSON(stake)
	},
}

var matchupCmd = &cobra.Command{
	Use:   "matchup",
	Short: "Cover probabilities for a named favorite and underdog",
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := models.ParseSport(flagSport)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fav, dog, derr := est.CoverPairByName(ctx, sport, flagFavorite, flagUnderdog, flagSpread)
		if derr != nil {
			return derr
		}
		return printJSON(map[string]interface{}{
			"favorite":                   flagFavorite,
			"underdog":                   flagUnderdog,
			"spread":                     flagSpread,
			"favorite_cover_probability": fav,
			"underdog_cover_probability": dog,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("estimate %s (%s)\n", Version, GitCommit)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLog = logger.NewLogger("error", cfg.App.Environment)

	tables := teams.NewTableProvider(appLog)
	if cfg.Stats.TableDir != "" {
		for _, sport := range []models.Sport{models.SportFootball, models.SportBasketball, models.SportHockey} {
			path := filepath.Join(cfg.Stats.TableDir, string(sport)+".csv")
			if _, statErr := os.Stat(path); statErr != nil {
				continue
			}
			if loadErr := tables.LoadCSV(path, sport); loadErr != nil {
				return loadErr
			}
		}
	}

	resolver := teams.NewResolver(tables, teams.ResolverConfig{
		MatchThreshold: cfg.Stats.MatchThreshold,
	}, appLog)
	est = estimator.New(resolver, appLog)
	orch = workflow.NewOrchestrator(est, repository.NewMemoryBetStore(), workflow.Defaults{
		Bankroll:      cfg.Staking.DefaultBankroll,
		KellyFraction: cfg.Staking.DefaultKellyFraction,
	}, appLog)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

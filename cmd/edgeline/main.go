// Package main provides the entry point for the edgeline tool server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ceddto100/edgeline/internal/config"
	"github.com/ceddto100/edgeline/internal/database"
	"github.com/ceddto100/edgeline/internal/estimator"
	"github.com/ceddto100/edgeline/internal/logger"
	"github.com/ceddto100/edgeline/internal/metrics"
	"github.com/ceddto100/edgeline/internal/models"
	"github.com/ceddto100/edgeline/internal/repository"
	"github.com/ceddto100/edgeline/internal/scheduler"
	"github.com/ceddto100/edgeline/internal/server"
	"github.com/ceddto100/edgeline/internal/teams"
	"github.com/ceddto100/edgeline/internal/workflow"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	configPath := os.Getenv("EDGELINE_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Edgeline tool server starting")

	metrics.InitRegistry()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Stats provider: remote API when configured, flat tables otherwise
	var provider teams.Provider
	var sched *scheduler.Scheduler
	if cfg.Stats.RemoteBaseURL != "" {
		httpCfg := teams.DefaultHTTPProviderConfig(cfg.Stats.RemoteBaseURL)
		httpCfg.APIKey = cfg.Stats.RemoteAPIKey
		if cfg.Stats.CacheTTLSeconds > 0 {
			httpCfg.CacheTTL = time.Duration(cfg.Stats.CacheTTLSeconds) * time.Second
		}
		provider = teams.NewHTTPProvider(httpCfg, appLog)
		appLog.WithField("base_url", cfg.Stats.RemoteBaseURL).Info("Using remote stats provider")
	} else {
		tables := teams.NewTableProvider(appLog)
		if err := loadTables(tables, cfg.Stats.TableDir); err != nil {
			appLog.WithError(err).Fatal("Failed to load team stat tables")
		}
		provider = tables

		if cfg.Stats.ReloadSchedule != "" {
			sched = scheduler.NewScheduler(appLog)
			if err := sched.ScheduleStatsReload(cfg.Stats.ReloadSchedule, func() error {
				return loadTables(tables, cfg.Stats.TableDir)
			}); err != nil {
				appLog.WithError(err).Fatal("Failed to schedule stats reload")
			}
			sched.Start()
			defer sched.Stop()
		}
	}

	resolver := teams.NewResolver(provider, teams.ResolverConfig{
		MatchThreshold: cfg.Stats.MatchThreshold,
	}, appLog)
	est := estimator.New(resolver, appLog)

	// Bet store: PostgreSQL when configured, in-memory otherwise
	var store repository.BetStore
	var db *database.DB
	if cfg.UsePostgres() {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database schema")
		}
		store = repository.NewPostgresBetStore(db)
		appLog.Info("Database connection established")
	} else {
		store = repository.NewMemoryBetStore()
		appLog.Info("Using in-memory bet store")
	}

	orch := workflow.NewOrchestrator(est, store, workflow.Defaults{
		Bankroll:      cfg.Staking.DefaultBankroll,
		KellyFraction: cfg.Staking.DefaultKellyFraction,
	}, appLog)

	deps := server.Deps{
		Estimator:    est,
		Orchestrator: orch,
		Store:        store,
		BetLogger:    logger.NewBetLogger(appLog),
		Logger:       appLog,
	}
	if db != nil {
		deps.DB = db
	}

	srv := server.New(cfg, deps)
	if err := srv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Tool server failed")
	}
	appLog.Info("Edgeline tool server stopped")
}

// loadTables loads per-sport CSV tables and any JSON snapshot files from
// dir. Missing files are skipped; an unreadable directory is an error.
func loadTables(tables *teams.TableProvider, dir string) error {
	if dir == "" {
		return nil
	}

	for _, sport := range []models.Sport{models.SportFootball, models.SportBasketball, models.SportHockey} {
		path := filepath.Join(dir, string(sport)+".csv")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := tables.LoadCSV(path, sport); err != nil {
			return err
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := tables.LoadJSON(path); err != nil {
			return err
		}
	}

	for _, sport := range []models.Sport{models.SportFootball, models.SportBasketball, models.SportHockey} {
		snaps, err := tables.All(context.Background(), sport)
		if err != nil {
			continue
		}
		metrics.LoadedTeams.WithLabelValues(string(sport)).Set(float64(len(snaps)))
	}
	return nil
}

// Command contracts runs the Starter Criteria and tenure batch jobs against
// the NBA stats API and writes their JSON snapshots.
//
// Usage:
//
//	scoracle-contracts sc
//	scoracle-contracts sc --season 2025-26 --out data/sc_data.json
//	scoracle-contracts tenure --max-lookback 22
//	scoracle-contracts tenure --skip-join-dates
//	scoracle-contracts all
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-contracts/internal/config"
	"github.com/albapepper/scoracle-contracts/internal/job"
	"github.com/albapepper/scoracle-contracts/internal/provider/nbastats"
	"github.com/albapepper/scoracle-contracts/internal/season"
	"github.com/albapepper/scoracle-contracts/internal/teams"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scoracle-contracts",
		Short:        "NBA Starter Criteria and tenure snapshot jobs",
		SilenceUsage: true,
	}

	var seasonFlag string
	root.PersistentFlags().StringVar(&seasonFlag, "season", "", "Current season, e.g. 2025-26 (default: from today's date)")

	root.AddCommand(scCmd(&seasonFlag))
	root.AddCommand(tenureCmd(&seasonFlag))
	root.AddCommand(allCmd(&seasonFlag))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// sc command
// --------------------------------------------------------------------------

func scCmd(seasonFlag *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sc",
		Short: "Evaluate Starter Criteria for every current player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(*seasonFlag, func(ctx context.Context, cfg *config.Config) error {
				if out != "" {
					cfg.SCOutputPath = out
				}
				_, err := runSC(ctx, cfg)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output path (default $SC_OUTPUT_PATH or sc_data.json)")
	return cmd
}

func runSC(ctx context.Context, cfg *config.Config) (job.Result, error) {
	client := newStatsClient(cfg, cfg.SCRequestInterval)
	start := time.Now()
	_, result, err := job.RunSC(ctx, client, job.SCOptions{
		Current:    cfg.CurrentSeason,
		OutputPath: cfg.SCOutputPath,
	}, logger)
	if err != nil {
		logger.Error("SC run failed", "season", cfg.CurrentSeason.String(), "error", err)
		return result, err
	}
	logger.Info("SC run finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
	logErrors(result)
	return result, nil
}

// --------------------------------------------------------------------------
// tenure command
// --------------------------------------------------------------------------

func tenureCmd(seasonFlag *string) *cobra.Command {
	var (
		out           string
		maxLookback   int
		skipJoinDates bool
	)
	cmd := &cobra.Command{
		Use:   "tenure",
		Short: "Work out how long each current player has been on their team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(*seasonFlag, func(ctx context.Context, cfg *config.Config) error {
				if out != "" {
					cfg.TenureOutputPath = out
				}
				if cmd.Flags().Changed("max-lookback") {
					cfg.MaxLookback = maxLookback
				}
				if skipJoinDates {
					cfg.ResolveJoinDates = false
				}
				_, err := runTenure(ctx, cfg)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output path (default $TENURE_OUTPUT_PATH or tenure_data.json)")
	cmd.Flags().IntVar(&maxLookback, "max-lookback", 22, "Maximum seasons to walk back")
	cmd.Flags().BoolVar(&skipJoinDates, "skip-join-dates", false, "Skip exact join date lookups for players new this season")
	return cmd
}

func runTenure(ctx context.Context, cfg *config.Config) (job.Result, error) {
	client := newStatsClient(cfg, cfg.TenureRequestInterval)
	start := time.Now()
	_, result, err := job.RunTenure(ctx, client, job.TenureOptions{
		Current:          cfg.CurrentSeason,
		MaxLookback:      cfg.MaxLookback,
		ResolveJoinDates: cfg.ResolveJoinDates,
		Teams:            teams.NBA(),
		OutputPath:       cfg.TenureOutputPath,
	}, logger)
	if err != nil {
		logger.Error("Tenure run failed", "season", cfg.CurrentSeason.String(), "error", err)
		return result, err
	}
	logger.Info("Tenure run finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
	logErrors(result)
	return result, nil
}

// --------------------------------------------------------------------------
// all command
// --------------------------------------------------------------------------

func allCmd(seasonFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run the SC and tenure jobs back to back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(*seasonFlag, func(ctx context.Context, cfg *config.Config) error {
				var total job.Result
				r, err := runSC(ctx, cfg)
				if err != nil {
					return err
				}
				total.Add(r)
				r, err = runTenure(ctx, cfg)
				if err != nil {
					return err
				}
				total.Add(r)
				logger.Info("All jobs finished", "summary", total.Summary())
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runJob handles config loading, logging setup and context cancellation.
func runJob(seasonFlag string, fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load(time.Now())
	if err != nil {
		return err
	}
	if seasonFlag != "" {
		s, err := season.Parse(seasonFlag)
		if err != nil {
			return err
		}
		cfg.CurrentSeason = s
	}
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	return fn(ctx, cfg)
}

func newStatsClient(cfg *config.Config, interval time.Duration) *nbastats.Client {
	return nbastats.NewClient(nbastats.Options{
		BaseURL:         cfg.StatsBaseURL,
		Timeout:         cfg.StatsTimeout,
		RequestInterval: interval,
		RetryAttempts:   cfg.StatsRetryAttempts,
		RetryDelay:      cfg.StatsRetryDelay,
	}, logger)
}

func logErrors(result job.Result) {
	for _, e := range result.Errors {
		logger.Warn("run error", "error", e)
	}
}

package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/report"
	"github.com/albapepper/scoracle-contracts/internal/season"
	"github.com/albapepper/scoracle-contracts/internal/starter"
	"github.com/albapepper/scoracle-contracts/internal/tenure"
)

// ErrNoCurrentData is returned when the mandatory current-season fetch fails
// or comes back empty.
var ErrNoCurrentData = errors.New("no current season data")

// SCOptions configures an SC run.
type SCOptions struct {
	Current    season.Season
	OutputPath string // skipped when empty
}

// RunSC evaluates Starter Criteria for every player in the current season
// against the previous season. Only the current-season fetch is fatal; when
// the previous season is unavailable every player is judged as having no
// prior season.
func RunSC(ctx context.Context, src tenure.SeasonSource, opts SCOptions, logger *slog.Logger) (*report.SC, Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var result Result
	prevSeason := opts.Current.Prev()

	logger.Info("Fetching current season", "season", opts.Current.String())
	curr, err := fetchCurrent(ctx, src, opts.Current)
	if err != nil {
		return nil, result, err
	}
	result.SeasonsFetched++
	logger.Info("Current season fetched", "season", opts.Current.String(), "rows", len(curr))

	logger.Info("Fetching previous season", "season", prevSeason.String())
	prev, err := src.SeasonTotals(ctx, prevSeason)
	if err != nil {
		logger.Warn("Previous season unavailable, evaluating without it", "season", prevSeason.String(), "error", err)
		result.AddErrorf("fetch previous season %s: %v", prevSeason, err)
		prev = nil
	} else {
		result.SeasonsFetched++
		logger.Info("Previous season fetched", "season", prevSeason.String(), "rows", len(prev))
	}

	players := starter.EvaluateAll(curr, prev)
	result.Players = len(players)
	result.Met = starter.CountMet(players)

	doc := &report.SC{
		Updated:        report.Now(),
		CurrentSeason:  opts.Current,
		PreviousSeason: prevSeason,
		Players:        players,
	}
	if opts.OutputPath != "" {
		if err := report.WriteFile(opts.OutputPath, doc); err != nil {
			return doc, result, err
		}
		logger.Info("SC snapshot written", "path", opts.OutputPath)
	}

	logger.Info("SC evaluated", "players", result.Players, "met", result.Met)
	return doc, result, nil
}

func fetchCurrent(ctx context.Context, src tenure.SeasonSource, s season.Season) ([]provider.PlayerSeasonRow, error) {
	rows, err := src.SeasonTotals(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoCurrentData, s, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s returned no players", ErrNoCurrentData, s)
	}
	return rows, nil
}

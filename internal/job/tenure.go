package job

import (
	"context"
	"log/slog"
	"sort"

	"github.com/albapepper/scoracle-contracts/internal/report"
	"github.com/albapepper/scoracle-contracts/internal/season"
	"github.com/albapepper/scoracle-contracts/internal/teams"
	"github.com/albapepper/scoracle-contracts/internal/tenure"
)

// TenureSource is everything the tenure job fetches.
type TenureSource interface {
	tenure.SeasonSource
	tenure.GameLogSource
}

// TenureOptions configures a tenure run.
type TenureOptions struct {
	Current          season.Season
	MaxLookback      int
	ResolveJoinDates bool
	Teams            *teams.Table
	OutputPath       string // skipped when empty
}

// RunTenure works out every current player's continuous tenure on their
// team. Only the current-season fetch is fatal; later failures end the walk
// or leave a join date unset.
func RunTenure(ctx context.Context, src TenureSource, opts TenureOptions, logger *slog.Logger) (*report.Tenure, Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var result Result

	logger.Info("Fetching current season", "season", opts.Current.String())
	rows, err := fetchCurrent(ctx, src, opts.Current)
	if err != nil {
		return nil, result, err
	}
	result.SeasonsFetched++

	roster := tenure.NewRoster(rows, opts.Teams)
	result.Players = len(roster)
	logger.Info("Found active players", "count", len(roster))

	walk := tenure.NewWalker(src, opts.MaxLookback, logger).Run(ctx, opts.Current, roster)
	result.SeasonsFetched += walk.SeasonsFetched
	if walk.FetchErr != nil {
		result.AddErrorf("lookback stopped after %d seasons: %v", walk.SeasonsFetched, walk.FetchErr)
	}

	records := walk.Records()
	if opts.ResolveJoinDates {
		found, errs := tenure.NewJoinDateResolver(src, logger).Apply(ctx, walk, records)
		result.JoinDates = found
		for _, e := range errs {
			result.AddErrorf("join date: %v", e)
		}
		logger.Info("Join dates resolved", "found", found, "failed", len(errs))
	}

	exceeded := 0
	for _, r := range records {
		if r.LowerBound {
			result.LowerBound++
		}
		if r.ExceedsLookback {
			exceeded++
		}
	}

	doc := &report.Tenure{
		Updated:          report.Now(),
		Season:           opts.Current,
		SeasonsChecked:   walk.SeasonsChecked,
		LookbackExceeded: exceeded,
		Players:          report.NewTenureEntries(records),
	}
	if opts.OutputPath != "" {
		if err := report.WriteFile(opts.OutputPath, doc); err != nil {
			return doc, result, err
		}
		logger.Info("Tenure snapshot written", "path", opts.OutputPath, "players", len(doc.Players))
	}

	logLongest(logger, doc.Players, 10)
	return doc, result, nil
}

// logLongest logs the n longest-tenured players.
func logLongest(logger *slog.Logger, entries report.TenureEntries, n int) {
	by := make(report.TenureEntries, len(entries))
	copy(by, entries)
	sort.SliceStable(by, func(i, j int) bool {
		return by[i].Record.ContinuousSeasons > by[j].Record.ContinuousSeasons
	})
	if len(by) > n {
		by = by[:n]
	}
	for _, e := range by {
		logger.Info("Long tenure",
			"player", e.Name, "team", e.Record.Team,
			"since", e.Record.JoinedSeason.String(),
			"seasons", e.Record.ContinuousSeasons)
	}
}

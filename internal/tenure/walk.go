package tenure

import (
	"context"
	"log/slog"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/season"
)

// DefaultMaxLookback covers the longest active careers.
const DefaultMaxLookback = 22

// SeasonSource fetches a season's player rows.
type SeasonSource interface {
	SeasonTotals(ctx context.Context, s season.Season) ([]provider.PlayerSeasonRow, error)
}

// Walker runs the backward season walk.
type Walker struct {
	source      SeasonSource
	maxLookback int
	logger      *slog.Logger
}

// NewWalker creates a Walker. A non-positive maxLookback uses
// DefaultMaxLookback.
func NewWalker(source SeasonSource, maxLookback int, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	if maxLookback <= 0 {
		maxLookback = DefaultMaxLookback
	}
	return &Walker{source: source, maxLookback: maxLookback, logger: logger}
}

// Walk is the outcome of a backward walk.
type Walk struct {
	Current season.Season
	Roster  Roster

	// Start is the first season of each player's current stint.
	Start map[int]season.Season

	// Unresolved holds players whose stint reaches back past the last
	// season checked; their Start is a lower bound.
	Unresolved map[int]struct{}

	SeasonsChecked    int // seasons requested, including one that failed
	SeasonsFetched    int
	LookbackExhausted bool
	FetchErr          error // set when a season fetch halted the walk
}

// Run walks back from current over the roster.
func (w *Walker) Run(ctx context.Context, current season.Season, roster Roster) *Walk {
	walk := &Walk{
		Current:    current,
		Roster:     roster,
		Start:      make(map[int]season.Season, len(roster)),
		Unresolved: make(map[int]struct{}, len(roster)),
	}
	for id := range roster {
		walk.Start[id] = current
		walk.Unresolved[id] = struct{}{}
	}

	s := current
	for i := 0; i < w.maxLookback; i++ {
		if len(walk.Unresolved) == 0 {
			w.logger.Info("All players resolved", "seasons_checked", walk.SeasonsChecked)
			return walk
		}
		if err := ctx.Err(); err != nil {
			walk.FetchErr = err
			return walk
		}

		s = s.Prev()
		walk.SeasonsChecked++
		rows, err := w.source.SeasonTotals(ctx, s)
		if err != nil {
			w.logger.Warn("Could not fetch season, stopping lookback", "season", s.String(), "error", err)
			walk.FetchErr = err
			return walk
		}
		walk.SeasonsFetched++

		n := walk.step(s, NewSeasonTeams(rows))
		w.logger.Info("Season checked",
			"season", s.String(), "players", len(rows),
			"resolved", n, "remaining", len(walk.Unresolved))
	}

	if len(walk.Unresolved) > 0 {
		walk.LookbackExhausted = true
		w.logger.Warn("Players exceed lookback window",
			"count", len(walk.Unresolved), "max_lookback", w.maxLookback)
	}
	return walk
}

// step compares one prior season against every unresolved player and
// returns how many were frozen.
func (walk *Walk) step(s season.Season, past SeasonTeams) int {
	var frozen []int
	for id := range walk.Unresolved {
		if past.PlayedFor(id, walk.Roster[id].TeamID) {
			walk.Start[id] = s
			continue
		}
		// Absent, or on another team: the stint began the season after s,
		// which Start already holds.
		frozen = append(frozen, id)
	}
	for _, id := range frozen {
		delete(walk.Unresolved, id)
	}
	return len(frozen)
}

// ContinuousSeasons is the length of a player's current stint in seasons.
func (walk *Walk) ContinuousSeasons(playerID int) int {
	return walk.Current.SeasonsSince(walk.Start[playerID])
}

// JoinedThisSeason reports whether the player's stint is known to have begun
// this season. An unresolved player never qualifies: when the first prior
// season could not be fetched, Start still holds Current only because nothing
// was compared.
func (walk *Walk) JoinedThisSeason(playerID int) bool {
	return walk.Start[playerID] == walk.Current && !walk.IsLowerBound(playerID)
}

// IsLowerBound reports whether the player's tenure may be longer than
// reported.
func (walk *Walk) IsLowerBound(playerID int) bool {
	_, ok := walk.Unresolved[playerID]
	return ok
}

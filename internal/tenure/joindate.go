package tenure

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/season"
)

// GameLogSource fetches a player's game log for a season.
type GameLogSource interface {
	PlayerGameLog(ctx context.Context, playerID int, s season.Season) ([]provider.GameLogEntry, error)
}

// JoinDateResolver finds the exact join date of players who joined their
// team this season by looking up their first game for it.
type JoinDateResolver struct {
	source GameLogSource
	logger *slog.Logger
}

// NewJoinDateResolver creates a resolver backed by source.
func NewJoinDateResolver(source GameLogSource, logger *slog.Logger) *JoinDateResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &JoinDateResolver{source: source, logger: logger}
}

// FirstGame returns the date of the player's earliest game for their current
// team in season s. This narrows the plain earliest-game rule: games played
// for a previous team before a mid-season trade are skipped when the log
// carries matchups, and the earliest game overall is used only when no
// matchup names the current team. ok is false when the log is empty.
func (r *JoinDateResolver) FirstGame(ctx context.Context, p Player, s season.Season) (date time.Time, ok bool, err error) {
	games, err := r.source.PlayerGameLog(ctx, p.ID, s)
	if err != nil {
		return time.Time{}, false, err
	}
	date, ok = earliestGame(games, p.TeamAbbreviation)
	return date, ok, nil
}

func earliestGame(games []provider.GameLogEntry, team string) (time.Time, bool) {
	var earliest, earliestForTeam time.Time
	for _, g := range games {
		if earliest.IsZero() || g.GameDate.Before(earliest) {
			earliest = g.GameDate
		}
		if team != "" && g.TeamAbbreviation() == team {
			if earliestForTeam.IsZero() || g.GameDate.Before(earliestForTeam) {
				earliestForTeam = g.GameDate
			}
		}
	}
	if !earliestForTeam.IsZero() {
		return earliestForTeam, true
	}
	return earliest, !earliest.IsZero()
}

// Apply resolves exact join dates for every record that joined this season,
// one game-log fetch per player. Lower-bound records are skipped and keep
// their approximate date. A failed fetch or an empty log leaves the
// join date unset. It returns how many dates were found and the fetch errors.
func (r *JoinDateResolver) Apply(ctx context.Context, walk *Walk, records map[int]*Record) (found int, errs []error) {
	for _, id := range walk.Roster.IDs() {
		rec, ok := records[id]
		if !ok || !rec.JoinedThisSeason || rec.LowerBound {
			continue
		}
		if err := ctx.Err(); err != nil {
			return found, append(errs, err)
		}

		p := walk.Roster[id]
		date, ok, err := r.FirstGame(ctx, p, walk.Current)
		if err != nil {
			r.logger.Warn("Join date lookup failed", "player", p.Name, "player_id", id, "error", err)
			rec.JoinedDate = nil
			errs = append(errs, err)
			continue
		}
		if !ok {
			rec.JoinedDate = nil
			continue
		}
		d := date.Format(time.DateOnly)
		rec.JoinedDate = &d
		found++
	}
	return found, errs
}

// Package tenure works out how long each rostered player has been
// continuously on their current team.
//
// The current season's roster seeds every player's stint at the current
// season. Prior seasons are then fetched one at a time, newest first: a
// player still on the same team extends their stint back one season, while a
// player who was absent or on another team is frozen. The walk stops when
// every player is frozen, a season cannot be fetched, or the lookback budget
// runs out.
//
// A mid-season trade puts a player on several teams in one season; the
// player counts as on team T if T is any of them. A player who left T and
// later returned within the window is therefore over-counted.
package tenure

import (
	"sort"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/teams"
)

// Player is a player on the current roster.
type Player struct {
	ID               int
	Name             string
	TeamID           int
	TeamAbbreviation string
	GamesPlayed      int
}

// Roster is the current season's players keyed by player ID.
type Roster map[int]Player

// NewRoster builds the current roster from season rows. A player with more
// than one row keeps the team they played the most games for. Missing team
// abbreviations are filled from tbl when it is non-nil.
func NewRoster(rows []provider.PlayerSeasonRow, tbl *teams.Table) Roster {
	r := make(Roster, len(rows))
	for _, row := range rows {
		if p, ok := r[row.PlayerID]; ok && row.GamesPlayed <= p.GamesPlayed {
			continue
		}
		abbr := row.TeamAbbreviation
		if abbr == "" && tbl != nil {
			abbr = tbl.Abbreviation(row.TeamID)
		}
		r[row.PlayerID] = Player{
			ID:               row.PlayerID,
			Name:             row.Name,
			TeamID:           row.TeamID,
			TeamAbbreviation: abbr,
			GamesPlayed:      row.GamesPlayed,
		}
	}
	return r
}

// IDs returns the roster's player IDs in ascending order.
func (r Roster) IDs() []int {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SeasonTeams maps each player ID to every team they played for in a season.
type SeasonTeams map[int]map[int]struct{}

// NewSeasonTeams collects the team set of every player in rows.
func NewSeasonTeams(rows []provider.PlayerSeasonRow) SeasonTeams {
	st := make(SeasonTeams, len(rows))
	for _, row := range rows {
		set, ok := st[row.PlayerID]
		if !ok {
			set = make(map[int]struct{}, 1)
			st[row.PlayerID] = set
		}
		set[row.TeamID] = struct{}{}
	}
	return st
}

// PlayedFor reports whether the player appeared for the team that season.
func (st SeasonTeams) PlayedFor(playerID, teamID int) bool {
	_, ok := st[playerID][teamID]
	return ok
}

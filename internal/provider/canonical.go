// Package provider defines canonical data types that the stats client
// normalizes into. These structs are the contract between the HTTP client and
// the SC and tenure pipelines; the pipelines never see raw API tables.
package provider

import (
	"strings"
	"time"
)

// PlayerSeasonRow is one player's regular-season totals for one team stint.
// A player traded mid-season may produce one row per team.
type PlayerSeasonRow struct {
	PlayerID         int     `json:"player_id"`
	Name             string  `json:"name"`
	TeamID           int     `json:"team_id"`
	TeamAbbreviation string  `json:"team_abbreviation"`
	GamesPlayed      int     `json:"gp"`
	GamesStarted     int     `json:"gs"`
	Minutes          float64 `json:"min"`
}

// GameLogEntry is a single game from a player's season game log.
type GameLogEntry struct {
	GameID   string    `json:"game_id"`
	GameDate time.Time `json:"game_date"`
	Matchup  string    `json:"matchup"` // "LAL vs. GSW" or "LAL @ GSW"
}

// TeamAbbreviation returns the player's own team from the matchup string.
func (g GameLogEntry) TeamAbbreviation() string {
	if i := strings.IndexByte(g.Matchup, ' '); i > 0 {
		return g.Matchup[:i]
	}
	return g.Matchup
}

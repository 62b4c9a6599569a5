package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/season"
)

const (
	leagueDashPath  = "/leaguedashplayerstats"
	leagueDashTable = "LeagueDashPlayerStats"

	gameLogPath  = "/playergamelog"
	gameLogTable = "PlayerGameLog"

	regularSeason = "Regular Season"
	leagueNBA     = "00"
)

// Column headers read from the league dash table.
const (
	colPlayerID   = "PLAYER_ID"
	colPlayerName = "PLAYER_NAME"
	colTeamID     = "TEAM_ID"
	colTeamAbbr   = "TEAM_ABBREVIATION"
	colGP         = "GP"
	colGS         = "GS"
	colMIN        = "MIN"

	colGameID   = "Game_ID"
	colGameDate = "GAME_DATE"
	colMatchup  = "MATCHUP"
)

// gameDateLayouts are the formats GAME_DATE has been seen in. Month names
// parse case-insensitively, so "OCT 22, 2025" also matches.
var gameDateLayouts = []string{"Jan 2, 2006", "2006-01-02T15:04:05", "2006-01-02"}

// --------------------------------------------------------------------------
// Season totals
// --------------------------------------------------------------------------

// SeasonTotals fetches regular-season totals for every player in a season.
// Players traded mid-season appear once per team.
func (c *Client) SeasonTotals(ctx context.Context, s season.Season) ([]provider.PlayerSeasonRow, error) {
	params := url.Values{
		"Season":      {s.String()},
		"SeasonType":  {regularSeason},
		"PerMode":     {"Totals"},
		"MeasureType": {"Base"},
		"LeagueID":    {leagueNBA},
	}

	var rows []provider.PlayerSeasonRow
	err := c.get(ctx, leagueDashPath, params, func(resp *provider.Response) error {
		tbl, err := resp.Table(leagueDashTable)
		if err != nil {
			return err
		}
		cols, err := tbl.Columns(colPlayerID, colPlayerName, colTeamID, colTeamAbbr, colGP, colGS, colMIN)
		if err != nil {
			return err
		}
		rows = make([]provider.PlayerSeasonRow, 0, len(tbl.RowSet))
		return tbl.Rows(cols, func(r provider.Row) error {
			row, err := normalizeSeasonRow(r)
			if err != nil {
				return err
			}
			rows = append(rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("fetch season totals %s: %w", s, err)
	}
	return rows, nil
}

func normalizeSeasonRow(r provider.Row) (provider.PlayerSeasonRow, error) {
	var (
		row provider.PlayerSeasonRow
		err error
	)
	if row.PlayerID, err = r.Int(colPlayerID); err != nil {
		return row, err
	}
	if row.Name, err = r.String(colPlayerName); err != nil {
		return row, err
	}
	if row.TeamID, err = r.Int(colTeamID); err != nil {
		return row, err
	}
	if row.TeamAbbreviation, err = r.String(colTeamAbbr); err != nil {
		return row, err
	}
	if row.GamesPlayed, err = r.Int(colGP); err != nil {
		return row, err
	}
	if row.GamesStarted, err = r.Int(colGS); err != nil {
		return row, err
	}
	if row.Minutes, err = r.Float(colMIN); err != nil {
		return row, err
	}
	return row, nil
}

// --------------------------------------------------------------------------
// Player game log
// --------------------------------------------------------------------------

// PlayerGameLog fetches a player's regular-season games, newest first as the
// API returns them.
func (c *Client) PlayerGameLog(ctx context.Context, playerID int, s season.Season) ([]provider.GameLogEntry, error) {
	params := url.Values{
		"PlayerID":   {strconv.Itoa(playerID)},
		"Season":     {s.String()},
		"SeasonType": {regularSeason},
		"LeagueID":   {leagueNBA},
	}

	var games []provider.GameLogEntry
	err := c.get(ctx, gameLogPath, params, func(resp *provider.Response) error {
		tbl, err := resp.Table(gameLogTable)
		if err != nil {
			return err
		}
		cols, err := tbl.Columns(colGameDate)
		if err != nil {
			return err
		}
		games = make([]provider.GameLogEntry, 0, len(tbl.RowSet))
		return tbl.Rows(cols, func(r provider.Row) error {
			g, err := normalizeGame(r)
			if err != nil {
				return err
			}
			games = append(games, g)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("fetch game log %d %s: %w", playerID, s, err)
	}
	return games, nil
}

func normalizeGame(r provider.Row) (provider.GameLogEntry, error) {
	var g provider.GameLogEntry

	raw, err := r.String(colGameDate)
	if err != nil {
		return g, err
	}
	if g.GameDate, err = parseGameDate(raw); err != nil {
		return g, err
	}
	if r.Has(colGameID) {
		if g.GameID, err = r.String(colGameID); err != nil {
			return g, err
		}
	}
	if r.Has(colMatchup) {
		if g.Matchup, err = r.String(colMatchup); err != nil {
			return g, err
		}
	}
	return g, nil
}

func parseGameDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized game date %q", raw)
}

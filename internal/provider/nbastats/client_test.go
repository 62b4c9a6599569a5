package nbastats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-contracts/internal/provider"
	"github.com/albapepper/scoracle-contracts/internal/retry"
	"github.com/albapepper/scoracle-contracts/internal/season"
)

const seasonBody = `{
  "resultSets": [
    {"name": "Other", "headers": ["X"], "rowSet": []},
    {
      "name": "LeagueDashPlayerStats",
      "headers": ["PLAYER_ID","PLAYER_NAME","NICKNAME","TEAM_ID","TEAM_ABBREVIATION","AGE","GP","W","L","MIN","GS"],
      "rowSet": [
        [2544,"LeBron James","LeBron",1610612747,"LAL",40.0,70,40,30,2444.9833333333333,70],
        [1628983,"Shai Gilgeous-Alexander","Shai",1610612760,"OKC",26.0,76,60,16,2598.0,76]
      ]
    }
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, RetryAttempts: 3}, nil)
}

func TestSeasonTotals(t *testing.T) {
	var gotQuery, gotReferer, gotOrigin string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/leaguedashplayerstats", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotReferer = r.Header.Get("Referer")
		gotOrigin = r.Header.Get("x-nba-stats-origin")
		fmt.Fprint(w, seasonBody)
	})

	rows, err := c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.NoError(t, err)
	require.Equal(t, []provider.PlayerSeasonRow{
		{PlayerID: 2544, Name: "LeBron James", TeamID: 1610612747, TeamAbbreviation: "LAL", GamesPlayed: 70, GamesStarted: 70, Minutes: 2444.9833333333333},
		{PlayerID: 1628983, Name: "Shai Gilgeous-Alexander", TeamID: 1610612760, TeamAbbreviation: "OKC", GamesPlayed: 76, GamesStarted: 76, Minutes: 2598},
	}, rows)

	require.Contains(t, gotQuery, "Season=2024-25")
	require.Contains(t, gotQuery, "SeasonType=Regular+Season")
	require.Contains(t, gotQuery, "PerMode=Totals")
	require.Contains(t, gotQuery, "MeasureType=Base")
	require.Contains(t, gotQuery, "LeagueID=00")
	require.Equal(t, "https://www.nba.com/", gotReferer)
	require.Equal(t, "stats", gotOrigin)
}

func TestSeasonTotals_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, seasonBody)
	})

	rows, err := c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 3, calls.Load())
}

func TestSeasonTotals_FailsAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream down")
	})

	_, err := c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.ErrorIs(t, err, retry.ErrExhausted)
	require.Contains(t, err.Error(), "500")
	require.EqualValues(t, 3, calls.Load())
}

func TestSeasonTotals_MalformedBodyIsRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "<html>blocked</html>")
	})

	_, err := c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.Error(t, err)
	require.EqualValues(t, 3, calls.Load())
}

func TestSeasonTotals_MissingTableOrColumnIsRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"resultSets":[{"name":"Other","headers":[],"rowSet":[]}]}`)
	})
	_, err := c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.ErrorIs(t, err, provider.ErrTableNotFound)
	require.ErrorIs(t, err, retry.ErrExhausted)
	require.EqualValues(t, 3, calls.Load())

	calls.Store(0)
	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"resultSets":[{"name":"LeagueDashPlayerStats","headers":["PLAYER_ID","PLAYER_NAME"],"rowSet":[]}]}`)
	})
	_, err = c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.ErrorIs(t, err, provider.ErrColumnNotFound)
	require.EqualValues(t, 3, calls.Load())
}

func TestSeasonTotals_MissingTableThenRecovers(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"resultSets":[]}`)
			return
		}
		fmt.Fprint(w, seasonBody)
	})
	rows, err := c.SeasonTotals(context.Background(), season.FromStartYear(2024))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 2, calls.Load())
}

func TestPlayerGameLog(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/playergamelog", r.URL.Path)
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"resultSets":[{"name":"PlayerGameLog",
			"headers":["SEASON_ID","Player_ID","Game_ID","GAME_DATE","MATCHUP","WL"],
			"rowSet":[
				["22025",1642000,"0022500300","DEC 02, 2025","MIA vs. BOS","W"],
				["22025",1642000,"0022500101","Nov 5, 2025","MIA @ NYK","L"],
				["22025",1642000,"0022500005","OCT 22, 2025","MIA @ ORL","W"]
			]}]}`)
	})

	games, err := c.PlayerGameLog(context.Background(), 1642000, season.FromStartYear(2025))
	require.NoError(t, err)
	require.Len(t, games, 3)
	require.Contains(t, gotQuery, "PlayerID=1642000")
	require.Contains(t, gotQuery, "Season=2025-26")

	require.Equal(t, "0022500300", games[0].GameID)
	require.Equal(t, time.Date(2025, time.December, 2, 0, 0, 0, 0, time.UTC), games[0].GameDate)
	require.Equal(t, time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC), games[1].GameDate)
	require.Equal(t, "MIA @ ORL", games[2].Matchup)
}

func TestPlayerGameLog_BadDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resultSets":[{"name":"PlayerGameLog","headers":["GAME_DATE"],"rowSet":[["someday"]]}]}`)
	})
	_, err := c.PlayerGameLog(context.Background(), 1, season.FromStartYear(2025))
	require.Error(t, err)
}

func TestPlayerGameLog_MissingTableIsRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"resultSets":[{"name":"PlayerGameLog","headers":["MATCHUP"],"rowSet":[]}]}`)
	})
	_, err := c.PlayerGameLog(context.Background(), 1, season.FromStartYear(2025))
	require.ErrorIs(t, err, provider.ErrColumnNotFound)
	require.EqualValues(t, 3, calls.Load())
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate([]byte("abc"), 5))
	require.Equal(t, "ab...", truncate([]byte("abcdef"), 2))
}

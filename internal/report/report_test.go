package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-contracts/internal/season"
	"github.com/albapepper/scoracle-contracts/internal/starter"
	"github.com/albapepper/scoracle-contracts/internal/tenure"
)

func ptr(s string) *string { return &s }

func sampleRecords() map[int]*tenure.Record {
	return map[int]*tenure.Record{
		1: {Name: "Zed", Team: "LAL", TeamID: 1610612747, PlayerID: 1, JoinedSeason: season.FromStartYear(2018), JoinedDate: ptr("2018-10-01"), ContinuousSeasons: 8},
		2: {Name: "Amy", Team: "LAL", TeamID: 1610612747, PlayerID: 2, JoinedSeason: season.FromStartYear(2025), JoinedDate: nil, ContinuousSeasons: 1, JoinedThisSeason: true},
		3: {Name: "Bob", Team: "BOS", TeamID: 1610612738, PlayerID: 3, JoinedSeason: season.FromStartYear(2003), JoinedDate: ptr("2003-10-01"), ContinuousSeasons: 23, LowerBound: true, ExceedsLookback: true},
		4: {Name: "Cal", Team: "LAL", TeamID: 1610612747, PlayerID: 4, JoinedSeason: season.FromStartYear(2025), JoinedDate: ptr("2025-11-04"), ContinuousSeasons: 1, JoinedThisSeason: true},
	}
}

func TestNewTenureEntries_Order(t *testing.T) {
	entries := NewTenureEntries(sampleRecords())
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"Bob", "Zed", "Amy", "Cal"}, names)

	require.Len(t, entries.Team("LAL"), 3)
	rec, ok := entries.Get("Bob")
	require.True(t, ok)
	require.True(t, rec.ExceedsLookback)
}

func TestNewTenureEntries_DuplicateNames(t *testing.T) {
	recs := map[int]*tenure.Record{
		10: {Name: "Same", Team: "ATL", PlayerID: 10, ContinuousSeasons: 1},
		20: {Name: "Same", Team: "ATL", PlayerID: 20, ContinuousSeasons: 1},
	}
	entries := NewTenureEntries(recs)
	require.Equal(t, "Same (10)", entries[0].Name)
	require.Equal(t, "Same (20)", entries[1].Name)
}

func TestTenure_JSONKeepsOrderAndRoundTrips(t *testing.T) {
	doc := Tenure{
		Updated:          At(time.Date(2026, time.January, 5, 14, 3, 9, 500, time.UTC)),
		Season:           season.FromStartYear(2025),
		SeasonsChecked:   22,
		LookbackExceeded: 1,
		Players:          NewTenureEntries(sampleRecords()),
	}

	data, err := Marshal(doc)
	require.NoError(t, err)
	out := string(data)
	require.True(t, strings.HasSuffix(out, "}\n"))
	require.Contains(t, out, `"updated": "2026-01-05T14:03:09Z"`)
	require.Contains(t, out, `"season": "2025-26"`)
	require.Contains(t, out, `"joined_date": null`)
	require.Less(t, strings.Index(out, `"Bob"`), strings.Index(out, `"Zed"`))
	require.Less(t, strings.Index(out, `"Zed"`), strings.Index(out, `"Amy"`))

	var back Tenure
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, doc.Updated.Time(), back.Updated.Time())
	require.Equal(t, doc.Season, back.Season)
	require.Equal(t, doc.SeasonsChecked, back.SeasonsChecked)
	require.Equal(t, doc.Players, back.Players)
}

func TestSC_RoundTrip(t *testing.T) {
	doc := SC{
		Updated:        At(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
		CurrentSeason:  season.FromStartYear(2025),
		PreviousSeason: season.FromStartYear(2024),
		Players: map[string]starter.Record{
			"A": starter.Evaluate(starter.Totals{GamesStarted: 45, Minutes: 1800.4}, nil),
			"B": starter.Evaluate(starter.Totals{GamesStarted: 20, Minutes: 1600}, &starter.Totals{GamesStarted: 41, Minutes: 1500}),
		},
	}
	path := filepath.Join(t.TempDir(), "out", "sc_data.json")
	require.NoError(t, WriteFile(path, doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"min4": 1800,`)
	require.Contains(t, string(raw), "≥")

	back, err := ReadSC(path)
	require.NoError(t, err)
	require.Equal(t, doc.Players, back.Players)
	require.Equal(t, "2024-25", back.PreviousSeason.String())
}

func TestWriteFile_ReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tenure_data.json")
	require.NoError(t, WriteFile(path, map[string]int{"a": 1}))
	require.NoError(t, WriteFile(path, map[string]int{"a": 2}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":2}`, string(raw))
}

func TestReadTenure_Missing(t *testing.T) {
	_, err := ReadTenure(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTenureEntries_RejectsNonObject(t *testing.T) {
	var e TenureEntries
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &e))
	require.NoError(t, json.Unmarshal([]byte(`null`), &e))
	require.Nil(t, e)
}

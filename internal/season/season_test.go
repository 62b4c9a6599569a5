package season

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse("2025-26")
	require.NoError(t, err)
	require.Equal(t, 2025, s.StartYear())
	require.Equal(t, 2026, s.EndYear())
	require.Equal(t, "2025-26", s.String())

	s, err = Parse("1999-00")
	require.NoError(t, err)
	require.Equal(t, 1999, s.StartYear())
	require.Equal(t, "1999-00", s.String())

	for _, bad := range []string{"", "2025", "2025-27", "25-26", "abcd-ef", "2025/26"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestCurrent(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), "2026-27"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Current(tc.at).String(), tc.at.String())
	}
}

func TestStepping(t *testing.T) {
	s := FromStartYear(2025)
	require.Equal(t, "2024-25", s.Prev().String())
	require.Equal(t, "2022-23", s.Back(3).String())
	require.Equal(t, 3, s.SeasonsSince(s.Back(2)))
	require.Equal(t, 1, s.SeasonsSince(s))
	require.Equal(t, "2023-10-01", s.Back(2).StartDate())
}

func TestJSON(t *testing.T) {
	type doc struct {
		Season Season `json:"season"`
	}
	b, err := json.Marshal(doc{Season: FromStartYear(2009)})
	require.NoError(t, err)
	require.JSONEq(t, `{"season":"2009-10"}`, string(b))

	var got doc
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, 2009, got.Season.StartYear())

	require.Error(t, json.Unmarshal([]byte(`{"season":"2009"}`), &got))
}

package teams

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNBA(t *testing.T) {
	tbl := NBA()
	require.Len(t, tbl.All(), 30)
	require.Equal(t, "LAL", tbl.Abbreviation(1610612747))
	require.Equal(t, "OKC", tbl.Abbreviation(1610612760))
	require.Equal(t, "", tbl.Abbreviation(42))

	tm, ok := tbl.Lookup(1610612744)
	require.True(t, ok)
	require.Equal(t, "Golden State Warriors", tm.Name)

	all := tbl.All()
	require.Equal(t, "ATL", all[0].Abbreviation)
	require.Equal(t, "WAS", all[len(all)-1].Abbreviation)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("teams:\n  - {id: 1, abbreviation: AAA}\n  - {id: 1, abbreviation: BBB}\n"))
	require.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte("teams:\n  - {id: 1}\n"))
	require.ErrorContains(t, err, "missing")

	_, err = Parse([]byte("teams: [unclosed"))
	require.Error(t, err)
}

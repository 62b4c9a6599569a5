// Package starter evaluates the Starter Criteria used to adjust qualifying
// offers for players coming off rookie-scale contracts.
//
// A player meets the criteria when, in the season just completed (season 4),
// they started 41 games or played 2000 minutes, or when they averaged either
// threshold across seasons 3 and 4.
package starter

import (
	"fmt"
	"math"
	"strings"

	"github.com/albapepper/scoracle-contracts/internal/provider"
)

// Thresholds fixed by the CBA.
const (
	GamesStartedThreshold = 41
	MinutesThreshold      = 2000
)

// Totals are one season's games started and minutes for a player.
type Totals struct {
	GamesStarted int
	Minutes      float64
}

// Record is the Starter Criteria verdict for one player. Minutes are rounded
// to whole numbers.
type Record struct {
	Met    bool   `json:"met"`
	GS4    int    `json:"gs4"`
	Min4   int    `json:"min4"`
	GS3    int    `json:"gs3"`
	Min3   int    `json:"min3"`
	Reason string `json:"reason"`
}

// Evaluate applies the criteria to season-4 totals and, when the player has
// one, their season-3 totals. With no prior season the two-season averages
// equal the season-4 figures; a missing season is not averaged in as zero.
func Evaluate(curr Totals, prev *Totals) Record {
	gs4, min4 := curr.GamesStarted, curr.Minutes

	var gs3 int
	var min3 float64
	avgGS, avgMin := float64(gs4), min4
	if prev != nil {
		gs3, min3 = prev.GamesStarted, prev.Minutes
		avgGS = float64(gs3+gs4) / 2
		avgMin = (min3 + min4) / 2
	}

	s4GS := gs4 >= GamesStartedThreshold
	s4Min := min4 >= MinutesThreshold
	avgGSMet := avgGS >= GamesStartedThreshold
	avgMinMet := avgMin >= MinutesThreshold

	var reasons []string
	if s4GS {
		reasons = append(reasons, fmt.Sprintf("S4 GS=%d≥%d", gs4, GamesStartedThreshold))
	}
	if s4Min {
		reasons = append(reasons, fmt.Sprintf("S4 MIN=%.0f≥%d", min4, MinutesThreshold))
	}
	if avgGSMet && !s4GS {
		reasons = append(reasons, fmt.Sprintf("Avg GS=%.1f≥%d", avgGS, GamesStartedThreshold))
	}
	if avgMinMet && !s4Min {
		reasons = append(reasons, fmt.Sprintf("Avg MIN=%.0f≥%d", avgMin, MinutesThreshold))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf("S4 GS=%d, MIN=%.0f", gs4, min4))
	}

	return Record{
		Met:    s4GS || s4Min || avgGSMet || avgMinMet,
		GS4:    gs4,
		Min4:   int(math.RoundToEven(min4)),
		GS3:    gs3,
		Min3:   int(math.RoundToEven(min3)),
		Reason: strings.Join(reasons, "; "),
	}
}

// EvaluateAll evaluates every player in the current season, joined by name
// to the previous season. A player with several team stints in a season is
// judged on the sum of them.
func EvaluateAll(curr, prev []provider.PlayerSeasonRow) map[string]Record {
	prevByName := totalsByName(prev)
	out := make(map[string]Record)
	for name, t := range totalsByName(curr) {
		var p *Totals
		if pt, ok := prevByName[name]; ok {
			p = &pt
		}
		out[name] = Evaluate(t, p)
	}
	return out
}

func totalsByName(rows []provider.PlayerSeasonRow) map[string]Totals {
	m := make(map[string]Totals, len(rows))
	for _, r := range rows {
		t := m[r.Name]
		t.GamesStarted += r.GamesStarted
		t.Minutes += r.Minutes
		m[r.Name] = t
	}
	return m
}

// CountMet returns how many records meet the criteria.
func CountMet(records map[string]Record) int {
	n := 0
	for _, r := range records {
		if r.Met {
			n++
		}
	}
	return n
}

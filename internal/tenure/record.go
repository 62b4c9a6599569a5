package tenure

import "github.com/albapepper/scoracle-contracts/internal/season"

// Record is one player's tenure on their current team.
type Record struct {
	Name              string        `json:"-"`
	Team              string        `json:"team"`
	TeamID            int           `json:"team_id"`
	PlayerID          int           `json:"player_id"`
	JoinedSeason      season.Season `json:"joined_season"`
	JoinedDate        *string       `json:"joined_date"`
	ContinuousSeasons int           `json:"continuous_seasons"`
	JoinedThisSeason  bool          `json:"joined_this_season"`
	LowerBound        bool          `json:"lower_bound"`
	ExceedsLookback   bool          `json:"exceeds_lookback"`
}

// Records builds a record per rostered player. JoinedDate is approximated as
// October 1st of the stint's first season.
func (walk *Walk) Records() map[int]*Record {
	out := make(map[int]*Record, len(walk.Roster))
	for id, p := range walk.Roster {
		start := walk.Start[id]
		date := start.StartDate()
		lower := walk.IsLowerBound(id)
		out[id] = &Record{
			Name:              p.Name,
			Team:              p.TeamAbbreviation,
			TeamID:            p.TeamID,
			PlayerID:          id,
			JoinedSeason:      start,
			JoinedDate:        &date,
			ContinuousSeasons: walk.ContinuousSeasons(id),
			JoinedThisSeason:  walk.JoinedThisSeason(id),
			LowerBound:        lower,
			ExceedsLookback:   lower && walk.LookbackExhausted,
		}
	}
	return out
}

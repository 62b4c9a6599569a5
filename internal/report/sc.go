package report

import (
	"github.com/albapepper/scoracle-contracts/internal/season"
	"github.com/albapepper/scoracle-contracts/internal/starter"
)

// SC is the Starter Criteria snapshot.
type SC struct {
	Updated        Timestamp                 `json:"updated"`
	CurrentSeason  season.Season             `json:"current_season"`
	PreviousSeason season.Season             `json:"previous_season"`
	Players        map[string]starter.Record `json:"players"`
}

// ReadSC loads an SC snapshot from disk.
func ReadSC(path string) (*SC, error) {
	var doc SC
	if err := readFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Package teams holds the static team-ID to abbreviation table.
package teams

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed teams.yaml
var nbaYAML []byte

// Team is one franchise entry.
type Team struct {
	ID           int    `yaml:"id"`
	Abbreviation string `yaml:"abbreviation"`
	Name         string `yaml:"name"`
}

// Table is an immutable lookup of teams by ID.
type Table struct {
	byID map[int]Team
}

// NBA returns the embedded NBA table.
func NBA() *Table {
	t, err := Parse(nbaYAML)
	if err != nil {
		panic(fmt.Sprintf("teams: embedded table: %v", err))
	}
	return t
}

// Parse reads a table from YAML of the form `teams: [{id, abbreviation, name}]`.
func Parse(data []byte) (*Table, error) {
	var doc struct {
		Teams []Team `yaml:"teams"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse teams: %w", err)
	}
	byID := make(map[int]Team, len(doc.Teams))
	for _, tm := range doc.Teams {
		if tm.ID == 0 || tm.Abbreviation == "" {
			return nil, fmt.Errorf("parse teams: entry %+v missing id or abbreviation", tm)
		}
		if _, dup := byID[tm.ID]; dup {
			return nil, fmt.Errorf("parse teams: duplicate id %d", tm.ID)
		}
		byID[tm.ID] = tm
	}
	return &Table{byID: byID}, nil
}

// Abbreviation returns the team's short code, or "" if the ID is unknown.
func (t *Table) Abbreviation(id int) string {
	return t.byID[id].Abbreviation
}

// Lookup returns the team with the given ID.
func (t *Table) Lookup(id int) (Team, bool) {
	tm, ok := t.byID[id]
	return tm, ok
}

// All returns every team ordered by abbreviation.
func (t *Table) All() []Team {
	out := make([]Team, 0, len(t.byID))
	for _, tm := range t.byID {
		out = append(out, tm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abbreviation < out[j].Abbreviation })
	return out
}

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/albapepper/scoracle-contracts/internal/season"
	"github.com/albapepper/scoracle-contracts/internal/tenure"
)

// Tenure is the tenure snapshot.
type Tenure struct {
	Updated          Timestamp     `json:"updated"`
	Season           season.Season `json:"season"`
	SeasonsChecked   int           `json:"seasons_checked"`
	LookbackExceeded int           `json:"lookback_exceeded"`
	Players          TenureEntries `json:"players"`
}

// TenureEntry is one player's record under their display name.
type TenureEntry struct {
	Name   string
	Record tenure.Record
}

// TenureEntries encodes as a JSON object whose keys keep slice order.
type TenureEntries []TenureEntry

// NewTenureEntries orders records by team, longest tenure first, then name.
// Two players sharing a name are told apart by appending the player ID.
func NewTenureEntries(records map[int]*tenure.Record) TenureEntries {
	names := make(map[string]int, len(records))
	for _, r := range records {
		names[r.Name]++
	}

	out := make(TenureEntries, 0, len(records))
	for _, r := range records {
		name := r.Name
		if names[name] > 1 {
			name = name + " (" + strconv.Itoa(r.PlayerID) + ")"
		}
		rec := *r
		rec.Name = name
		out = append(out, TenureEntry{Name: name, Record: rec})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Record, out[j].Record
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.ContinuousSeasons != b.ContinuousSeasons {
			return a.ContinuousSeasons > b.ContinuousSeasons
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Team returns the entries for one team abbreviation, in order.
func (e TenureEntries) Team(abbr string) TenureEntries {
	var out TenureEntries
	for _, entry := range e {
		if entry.Record.Team == abbr {
			out = append(out, entry)
		}
	}
	return out
}

// Get returns the record stored under name.
func (e TenureEntries) Get(name string) (tenure.Record, bool) {
	for _, entry := range e {
		if entry.Name == name {
			return entry.Record, true
		}
	}
	return tenure.Record{}, false
}

// MarshalJSON implements json.Marshaler.
func (e TenureEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry.Record)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping document order.
func (e *TenureEntries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("tenure players: expected object, got %v", tok)
	}

	var out TenureEntries
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tenure players: expected key, got %v", tok)
		}
		var rec tenure.Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("tenure players %q: %w", name, err)
		}
		rec.Name = name
		out = append(out, TenureEntry{Name: name, Record: rec})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = out
	return nil
}

// ReadTenure loads a tenure snapshot from disk.
func ReadTenure(path string) (*Tenure, error) {
	var doc Tenure
	if err := readFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

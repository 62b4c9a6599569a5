package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrTableNotFound is returned when a response has no result table with
	// the requested name.
	ErrTableNotFound = errors.New("result table not found")

	// ErrColumnNotFound is returned when a table lacks a required header.
	ErrColumnNotFound = errors.New("column not found")
)

// Response is the envelope the stats API wraps every answer in. Most
// endpoints return a list of tables; a few return a single one.
type Response struct {
	ResultSets []Table `json:"resultSets"`
	ResultSet  *Table  `json:"resultSet"`
}

// Table is a named result table: a header list and positional rows.
type Table struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// DecodeResponse parses a raw stats API body.
func DecodeResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// Table returns the result table with the given name.
func (r *Response) Table(name string) (*Table, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	if r.ResultSet != nil && r.ResultSet.Name == name {
		return r.ResultSet, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
}

// Columns maps each required header to its position. Fields are always read
// by header name because the API's column order is not stable.
func (t *Table) Columns(required ...string) (Columns, error) {
	idx := make(Columns, len(t.Headers))
	for i, h := range t.Headers {
		idx[h] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w in %s: %s", ErrColumnNotFound, t.Name, strings.Join(missing, ", "))
	}
	return idx, nil
}

// Rows iterates the table, calling fn with each row bound to cols.
func (t *Table) Rows(cols Columns, fn func(Row) error) error {
	for i, cells := range t.RowSet {
		if err := fn(Row{cells: cells, cols: cols}); err != nil {
			return fmt.Errorf("%s row %d: %w", t.Name, i, err)
		}
	}
	return nil
}

// Columns maps header names to cell positions.
type Columns map[string]int

// Row is a table row whose cells are looked up by header name.
type Row struct {
	cells []any
	cols  Columns
}

// Has reports whether the row's table carries the column.
func (r Row) Has(col string) bool {
	_, ok := r.cols[col]
	return ok
}

func (r Row) cell(col string) (any, error) {
	i, ok := r.cols[col]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
	}
	if i >= len(r.cells) {
		return nil, fmt.Errorf("%s: row has %d cells, want index %d", col, len(r.cells), i)
	}
	return r.cells[i], nil
}

// String returns a text cell. Null cells read as "".
func (r Row) String(col string) (string, error) {
	v, err := r.cell(col)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	default:
		return fmt.Sprint(s), nil
	}
}

// Float returns a numeric cell. Null cells read as 0.
func (r Row) Float(col string) (float64, error) {
	v, err := r.cell(col)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	f, ok := ExtractValue(v)
	if !ok {
		return 0, fmt.Errorf("%s: not numeric: %v", col, v)
	}
	return f, nil
}

// Int returns a whole-number cell. Null cells read as 0.
func (r Row) Int(col string) (int, error) {
	f, err := r.Float(col)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s: not an integer: %v", col, f)
	}
	return int(f), nil
}

// ExtractValue normalizes a numeric cell. The API emits JSON numbers, but
// some endpoints stringify identifiers.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

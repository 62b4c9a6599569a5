// Package season handles NBA season identifiers of the form "YYYY-YY".
package season

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned when a string is not a valid season identifier.
var ErrInvalid = errors.New("invalid season")

// RolloverMonth is the first month of a new season. From October onwards the
// season that ends next calendar year is current.
const RolloverMonth = time.October

// Season is a basketball season identified by the calendar year it starts in.
type Season struct {
	start int
}

// FromStartYear returns the season starting in year, e.g. 2025 -> "2025-26".
func FromStartYear(year int) Season {
	return Season{start: year}
}

// Parse reads a "YYYY-YY" identifier. The two-digit suffix must be the year
// after the start year.
func Parse(s string) (Season, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || len(startStr) != 4 || len(endStr) != 2 {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil || end != (start+1)%100 {
		return Season{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Season{start: start}, nil
}

// Current returns the season in progress at t.
func Current(t time.Time) Season {
	end := t.Year()
	if t.Month() >= RolloverMonth {
		end++
	}
	return Season{start: end - 1}
}

// StartYear is the calendar year the season starts in.
func (s Season) StartYear() int { return s.start }

// EndYear is the calendar year the season ends in.
func (s Season) EndYear() int { return s.start + 1 }

// Prev returns the season before s.
func (s Season) Prev() Season { return Season{start: s.start - 1} }

// Back returns the season n seasons before s.
func (s Season) Back(n int) Season { return Season{start: s.start - n} }

// IsZero reports whether s was never set.
func (s Season) IsZero() bool { return s.start == 0 }

// SeasonsSince counts the seasons from earlier through s inclusive.
func (s Season) SeasonsSince(earlier Season) int {
	return s.start - earlier.start + 1
}

// StartDate approximates the first day of the season as October 1st.
func (s Season) StartDate() string {
	return fmt.Sprintf("%d-10-01", s.start)
}

// String returns the "YYYY-YY" form.
func (s Season) String() string {
	return fmt.Sprintf("%d-%02d", s.start, (s.start+1)%100)
}

// MarshalText implements encoding.TextMarshaler.
func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Season) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

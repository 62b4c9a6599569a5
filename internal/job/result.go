// Package job runs the SC and tenure batch pipelines: fetch, join, evaluate
// and write the snapshot.
package job

import "fmt"

// Result tracks counts and non-fatal errors from a run.
type Result struct {
	SeasonsFetched int
	Players        int
	Met            int // SC only
	LowerBound     int // tenure only
	JoinDates      int // tenure only
	Errors         []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.SeasonsFetched += other.SeasonsFetched
	r.Players += other.Players
	r.Met += other.Met
	r.LowerBound += other.LowerBound
	r.JoinDates += other.JoinDates
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"seasons=%d players=%d met=%d lower_bound=%d join_dates=%d errors=%d",
		r.SeasonsFetched, r.Players, r.Met,
		r.LowerBound, r.JoinDates, len(r.Errors),
	)
}

// Package filter narrows and orders the job list for display.
//
// Apply is a pure function of (records, criteria): it never mutates its
// input and always returns a fresh slice.
package filter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/project-tktt/job-viewer/internal/domain"
)

// SortBy names an ordering of the result set
type SortBy string

const (
	SortLastDateAsc  SortBy = "lastDateAsc"
	SortLastDateDesc SortBy = "lastDateDesc"
)

// Month is a calendar month; MonthIndex is 0-11
type Month struct {
	Year       int `json:"year"`
	MonthIndex int `json:"monthIndex"`
}

// ParseMonth reads "2024-07" into a Month
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return Month{Year: t.Year(), MonthIndex: int(t.Month()) - 1}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.MonthIndex+1)
}

// Criteria is the user's current filter selection. Empty fields match everything.
type Criteria struct {
	Keyword       string
	Qualification string
	Board         string
	State         string
	Month         *Month
	SortBy        SortBy
}

// Apply filters and sorts records
func Apply(records []domain.Job, c Criteria) []domain.Job {
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	type dated struct {
		job   domain.Job
		date  time.Time
		valid bool
	}

	kept := make([]dated, 0, len(records))
	for _, job := range records {
		if keyword != "" && !matchesKeyword(job, keyword) {
			continue
		}
		if c.Qualification != "" && job.Qualification != c.Qualification {
			continue
		}
		if c.Board != "" && job.Board != c.Board {
			continue
		}
		if c.State != "" && (!job.HasState() || job.State != c.State) {
			continue
		}

		date, ok := ParseDate(job.LastDate)
		if c.Month != nil {
			if !ok || date.Year() != c.Month.Year || int(date.Month())-1 != c.Month.MonthIndex {
				continue
			}
		}
		kept = append(kept, dated{job: job, date: date, valid: ok})
	}

	desc := c.SortBy == SortLastDateDesc
	// Invalid dates go last in both directions
	slices.SortStableFunc(kept, func(a, b dated) int {
		switch {
		case !a.valid && !b.valid:
			return 0
		case !a.valid:
			return 1
		case !b.valid:
			return -1
		}
		if desc {
			return b.date.Compare(a.date)
		}
		return a.date.Compare(b.date)
	})

	out := make([]domain.Job, len(kept))
	for i, d := range kept {
		out[i] = d.job
	}
	return out
}

func matchesKeyword(job domain.Job, keyword string) bool {
	return strings.Contains(strings.ToLower(job.Title), keyword) ||
		strings.Contains(strings.ToLower(job.Board), keyword) ||
		strings.Contains(strings.ToLower(job.State), keyword)
}

package filter

import (
	"cmp"
	"slices"

	"github.com/project-tktt/job-viewer/internal/domain"
)

// Options lists the distinct values present in records for each
// selectable criterion.
type Options struct {
	Qualifications []string `json:"qualifications"`
	Boards         []string `json:"boards"`
	States         []string `json:"states"`
	Months         []Month  `json:"months"`
}

// CollectOptions gathers sorted distinct filter values from records
func CollectOptions(records []domain.Job) Options {
	quals := make(map[string]struct{})
	boards := make(map[string]struct{})
	states := make(map[string]struct{})
	months := make(map[Month]struct{})

	for _, job := range records {
		if job.Qualification != "" {
			quals[job.Qualification] = struct{}{}
		}
		if job.Board != "" {
			boards[job.Board] = struct{}{}
		}
		if job.HasState() {
			states[job.State] = struct{}{}
		}
		if t, ok := ParseDate(job.LastDate); ok {
			months[Month{Year: t.Year(), MonthIndex: int(t.Month()) - 1}] = struct{}{}
		}
	}

	opts := Options{
		Qualifications: sortedKeys(quals),
		Boards:         sortedKeys(boards),
		States:         sortedKeys(states),
	}
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	slices.SortFunc(opts.Months, func(a, b Month) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.MonthIndex, b.MonthIndex)
	})
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

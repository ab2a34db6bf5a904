// Package viewer holds the application state shared by the loader, the
// filter engine and the pager: the record list, the active criteria, the
// current page and the user-visible status.
package viewer

import (
	"sync"
	"sync/atomic"

	"github.com/project-tktt/job-viewer/internal/domain"
	"github.com/project-tktt/job-viewer/internal/filter"
	"github.com/project-tktt/job-viewer/internal/pager"
)

// State is safe for concurrent use
type State struct {
	records atomic.Pointer[[]domain.Job]
	// updateMu serializes read-merge-store cycles on records
	updateMu sync.Mutex

	mu       sync.Mutex
	criteria filter.Criteria
	page     int
	filtered []domain.Job
	status   Status
	listener func(Status)
}

// New creates an empty state in the loading phase
func New() *State {
	s := &State{page: 1}
	empty := []domain.Job{}
	s.records.Store(&empty)
	s.status = Status{Loading: true, Page: 1, TotalPages: 1, LoadMore: LoadMoreButton{Label: LabelLoadMore}}
	return s
}

// OnStatus registers fn to receive every status change.
// fn must not call Update or Replace.
func (s *State) OnStatus(fn func(Status)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Records returns the current record list. Callers must not modify it.
func (s *State) Records() []domain.Job {
	return *s.records.Load()
}

// Update replaces the record list with fn(current) in one step and
// refilters. It returns the list sizes before and after.
func (s *State) Update(fn func(current []domain.Job) []domain.Job, preservePage bool) (before, after int) {
	s.updateMu.Lock()
	cur := s.Records()
	next := fn(cur)
	if next == nil {
		next = []domain.Job{}
	}
	s.records.Store(&next)
	// Refilter before releasing so a later list is never filtered ahead of this one
	s.Refilter(preservePage)
	s.updateMu.Unlock()

	return len(cur), len(next)
}

// Replace swaps in jobs wholesale
func (s *State) Replace(jobs []domain.Job, preservePage bool) {
	s.Update(func([]domain.Job) []domain.Job { return jobs }, preservePage)
}

// Criteria returns the active filter selection
func (s *State) Criteria() filter.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria applies a new selection and returns to page 1
func (s *State) SetCriteria(c filter.Criteria) {
	s.mu.Lock()
	s.criteria = c
	s.mu.Unlock()
	s.Refilter(false)
}

// Refilter recomputes the result set. The page resets to 1 unless
// preservePage is set, in which case it is clamped to the new range.
func (s *State) Refilter(preservePage bool) {
	records := s.Records()

	s.mu.Lock()
	s.filtered = filter.Apply(records, s.criteria)
	if preservePage {
		s.page = pager.Clamp(s.page, len(s.filtered))
	} else {
		s.page = 1
	}
	s.syncStatusLocked(len(records))
	s.notifyLocked()
}

// Filtered returns the current result set
func (s *State) Filtered() []domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered
}

// CurrentPage returns the 1-based page number
func (s *State) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageJobs returns the records on the current page
func (s *State) PageJobs() []domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pager.Slice(s.filtered, s.page)
}

// SetPage jumps to page, clamped
func (s *State) SetPage(page int) {
	s.movePage(func(p, n int) int { return pager.Jump(page, n) })
}

// NextPage advances one page
func (s *State) NextPage() { s.movePage(pager.Next) }

// PrevPage goes back one page
func (s *State) PrevPage() { s.movePage(pager.Prev) }

func (s *State) movePage(step func(page, n int) int) {
	s.mu.Lock()
	s.page = step(s.page, len(s.filtered))
	s.syncStatusLocked(len(s.Records()))
	s.notifyLocked()
}

// Lookup finds a record by its dedup key
func (s *State) Lookup(key string) (domain.Job, bool) {
	for _, job := range s.Records() {
		if job.Key() == key {
			return job, true
		}
	}
	return domain.Job{}, false
}

// ByID finds a record by its current positional id
func (s *State) ByID(id int) (domain.Job, bool) {
	records := s.Records()
	if id < 1 || id > len(records) {
		return domain.Job{}, false
	}
	return records[id-1], true
}

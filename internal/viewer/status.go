package viewer

import (
	"fmt"

	"github.com/project-tktt/job-viewer/internal/pager"
)

// Load-more button labels
const (
	LabelLoadMore = "Load more"
	LabelLoading  = "Loading…"
	LabelNoMore   = "No more jobs"
)

// LoadMoreButton is the state of the manual fetch control
type LoadMoreButton struct {
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// Status is what a front end needs to render the chrome around the list
type Status struct {
	Loading      bool           `json:"loading"`
	Total        int            `json:"total"`
	Filtered     int            `json:"filtered"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	ShowControls bool           `json:"showControls"`
	LoadMore     LoadMoreButton `json:"loadMore"`
}

// Empty reports the terminal "0 jobs" state
func (st Status) Empty() bool {
	return !st.Loading && st.Total == 0
}

// Summary is the one-line count shown above the list
func (st Status) Summary() string {
	if st.Loading {
		return LabelLoading
	}
	if st.Filtered == 1 {
		return "1 job"
	}
	return fmt.Sprintf("%d jobs", st.Filtered)
}

// Status returns a copy of the current status
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetLoading toggles the blocking loading indicator
func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	s.status.Loading = loading
	s.notifyLocked()
}

// SetLoadMore updates the load-more control
func (s *State) SetLoadMore(disabled bool, label string) {
	s.mu.Lock()
	s.status.LoadMore = LoadMoreButton{Disabled: disabled, Label: label}
	s.notifyLocked()
}

func (s *State) syncStatusLocked(total int) {
	n := len(s.filtered)
	s.status.Total = total
	s.status.Filtered = n
	s.status.Page = s.page
	s.status.TotalPages = pager.TotalPages(n)
	s.status.ShowControls = pager.ShowControls(n)
}

// notifyLocked releases s.mu before calling the listener
func (s *State) notifyLocked() {
	st, fn := s.status, s.listener
	s.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

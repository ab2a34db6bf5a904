package viewer

import (
	"fmt"
	"sync"
	"testing"

	"github.com/project-tktt/job-viewer/internal/common/normalizer"
	"github.com/project-tktt/job-viewer/internal/domain"
	"github.com/project-tktt/job-viewer/internal/filter"
)

func makeJobs(n int, state string) []domain.Job {
	jobs := make([]domain.Job, n)
	for i := range jobs {
		jobs[i] = domain.Job{
			Title:    fmt.Sprintf("Job %d", i),
			URL:      fmt.Sprintf("https://jobs.example/%s/%d", state, i),
			LastDate: fmt.Sprintf("2024-07-%02d", i%28+1),
			State:    state,
		}
	}
	return normalizer.Reindex(jobs)
}

func TestStatePagination(t *testing.T) {
	s := New()
	s.Replace(makeJobs(25, "Kerala"), false)

	st := s.Status()
	if st.Total != 25 || st.TotalPages != 3 || !st.ShowControls {
		t.Fatalf("status = %+v", st)
	}

	s.SetPage(4)
	if got := s.CurrentPage(); got != 3 {
		t.Errorf("page 4 should clamp to 3, got %d", got)
	}
	if got := len(s.PageJobs()); got != 1 {
		t.Errorf("last page has %d jobs", got)
	}

	s.PrevPage()
	s.PrevPage()
	s.PrevPage()
	if got := s.CurrentPage(); got != 1 {
		t.Errorf("page = %d", got)
	}
	s.NextPage()
	if got := s.CurrentPage(); got != 2 {
		t.Errorf("page = %d", got)
	}
}

func TestRefilterPreservePage(t *testing.T) {
	s := New()
	s.Replace(makeJobs(25, "Kerala"), false)
	s.SetPage(3)

	// Background merge keeps the page
	s.Update(func(cur []domain.Job) []domain.Job {
		return normalizer.Merge(cur, makeJobs(30, "Kerala"))
	}, true)
	if got := s.CurrentPage(); got != 3 {
		t.Errorf("preserved page = %d, want 3", got)
	}

	// Shrinking set clamps the preserved page
	s.Replace(makeJobs(5, "Kerala"), true)
	if got := s.CurrentPage(); got != 1 {
		t.Errorf("clamped page = %d, want 1", got)
	}

	// Criteria change always resets
	s.Replace(makeJobs(30, "Kerala"), false)
	s.SetPage(2)
	s.SetCriteria(filter.Criteria{SortBy: filter.SortLastDateDesc})
	if got := s.CurrentPage(); got != 1 {
		t.Errorf("criteria change page = %d, want 1", got)
	}
}

func TestStateFilterExcludesNullState(t *testing.T) {
	s := New()
	s.Replace(normalizer.Merge(makeJobs(3, "Kerala"), makeJobs(4, "")), false)
	s.SetCriteria(filter.Criteria{State: "Kerala"})

	if got := len(s.Filtered()); got != 3 {
		t.Errorf("filtered = %d, want 3", got)
	}
	if st := s.Status(); st.Total != 7 || st.Filtered != 3 || st.ShowControls {
		t.Errorf("status = %+v", st)
	}
}

func TestStatusTransitions(t *testing.T) {
	s := New()
	var mu sync.Mutex
	var seen []Status
	s.OnStatus(func(st Status) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	})

	if st := s.Status(); !st.Loading || st.Summary() != LabelLoading {
		t.Errorf("initial status = %+v", st)
	}

	s.SetLoading(false)
	s.Replace(nil, false)
	st := s.Status()
	if !st.Empty() || st.Summary() != "0 jobs" {
		t.Errorf("terminal status = %+v (%q)", st, st.Summary())
	}

	s.SetLoadMore(true, LabelLoading)
	if st := s.Status(); !st.LoadMore.Disabled || st.LoadMore.Label != LabelLoading {
		t.Errorf("load more = %+v", st.LoadMore)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Errorf("listener saw %d updates, want 3", len(seen))
	}
}

func TestLookup(t *testing.T) {
	s := New()
	s.Replace(makeJobs(3, "Goa"), false)

	job, ok := s.Lookup("https://jobs.example/Goa/1")
	if !ok || job.ID != 2 {
		t.Errorf("Lookup = %+v, %v", job, ok)
	}
	if _, ok := s.ByID(4); ok {
		t.Error("ByID out of range should miss")
	}
	if job, ok := s.ByID(3); !ok || job.Title != "Job 2" {
		t.Errorf("ByID(3) = %+v", job)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			s.Update(func(cur []domain.Job) []domain.Job {
				return normalizer.Merge(cur, makeJobs(10, fmt.Sprintf("w%d", w)))
			}, true)
		}(w)
	}
	wg.Wait()

	if got := len(s.Records()); got != 80 {
		t.Errorf("records = %d, want 80 (no lost updates)", got)
	}
}

func TestConcurrentUpdatesFilterInOrder(t *testing.T) {
	s := New()
	var mu sync.Mutex
	var seen []int
	s.OnStatus(func(st Status) {
		mu.Lock()
		seen = append(seen, st.Filtered)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			s.Update(func(cur []domain.Job) []domain.Job {
				return normalizer.Merge(cur, makeJobs(5, fmt.Sprintf("w%d", w)))
			}, true)
		}(w)
	}
	wg.Wait()

	if got := len(s.Filtered()); got != len(s.Records()) {
		t.Errorf("filtered = %d, records = %d", got, len(s.Records()))
	}
	if st := s.Status(); st.Total != 80 || st.Filtered != 80 {
		t.Errorf("status = %+v, want 80/80", st)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 16 {
		t.Fatalf("notifications = %d, want 16", len(seen))
	}
	for i, n := range seen {
		if n != (i+1)*5 {
			t.Errorf("notification %d filtered = %d, want %d", i, n, (i+1)*5)
		}
	}
}

package inference

import (
	"testing"

	"github.com/project-tktt/job-viewer/internal/domain"
)

func TestExtractPostCount(t *testing.T) {
	tests := []struct {
		title string
		want  int
		ok    bool
	}{
		{"SSC CGL 500 Posts 2024", 500, true},
		{"Railway Group D 1,03,769 Posts", 103769, true},
		{"IBPS Clerk 6,128 Posts", 6128, true},
		{"AIIMS Nursing Officer 1 Post", 1, true},
		{"Bank 200posts", 200, true},
		{"India Post GDS 2024", 0, false},
		{"Postal Assistant 300 Postal", 0, false},
		{"Walk-in Interview", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractPostCount(tt.title)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ExtractPostCount(%q) = %d,%v; want %d,%v", tt.title, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDeriveFieldsPostCount(t *testing.T) {
	job := domain.Job{Title: "SSC CGL 500 Posts 2024"}
	DeriveFields(&job)
	if job.PostCount == nil || *job.PostCount != 500 {
		t.Fatalf("expected postCount 500, got %v", job.PostCount)
	}
}

func TestDeriveFieldsKashmirBoard(t *testing.T) {
	job := domain.Job{Title: "Constable Recruitment", Board: "Kashmir Police Recruitment"}
	DeriveFields(&job)
	if job.State != JammuKashmir {
		t.Errorf("expected %q, got %q", JammuKashmir, job.State)
	}

	job = domain.Job{Title: "JKSSB Naib Tehsildar", Board: "Services Selection Board"}
	DeriveFields(&job)
	if job.State != JammuKashmir {
		t.Errorf("expected jkssb marker to yield %q, got %q", JammuKashmir, job.State)
	}
}

func TestDeriveFieldsOrder(t *testing.T) {
	// Explicit tag wins over text inference
	job := domain.Job{Title: "Kerala PSC LDC", Source: "tamil nadu"}
	DeriveFields(&job)
	if job.State != "Tamil Nadu" {
		t.Errorf("explicit tag: got %q", job.State)
	}

	// Existing state is never overwritten
	job = domain.Job{Title: "Kashmir Bank PO", State: "Delhi"}
	DeriveFields(&job)
	if job.State != "Delhi" {
		t.Errorf("existing state overwritten: got %q", job.State)
	}

	job = domain.Job{Title: "Kerala PSC LDC Recruitment", Board: "KPSC"}
	DeriveFields(&job)
	if job.State != "Kerala" {
		t.Errorf("generic inference: got %q", job.State)
	}

	job = domain.Job{Title: "UPSC Civil Services", Board: "UPSC"}
	DeriveFields(&job)
	if job.HasState() {
		t.Errorf("expected no state, got %q", job.State)
	}
}

func TestDeriveFieldsIdempotent(t *testing.T) {
	jobs := []domain.Job{
		{Title: "Bihar Police 21,391 Posts", Board: "CSBC"},
		{Title: "JK Bank Apprentice", Board: "J&K Bank"},
		{Title: "Clerk", Board: "Some Board"},
	}
	once := DeriveAll(jobs)
	twice := DeriveAll(once)

	for i := range once {
		a, b := once[i], twice[i]
		if a.State != b.State {
			t.Errorf("job %d: state changed %q -> %q", i, a.State, b.State)
		}
		if (a.PostCount == nil) != (b.PostCount == nil) || (a.PostCount != nil && *a.PostCount != *b.PostCount) {
			t.Errorf("job %d: postCount changed", i)
		}
	}
	if jobs[0].PostCount != nil {
		t.Error("DeriveAll must not mutate its input")
	}
}

func TestInferRegionListOrder(t *testing.T) {
	if got := InferRegion("kerala high court assistant"); got != "Kerala" {
		t.Errorf("got %q", got)
	}
	// "pradesh" is a token of the first candidate, so it wins over later ones
	if got := InferRegion("uttar pradesh police"); got != "Andhra Pradesh" {
		t.Errorf("expected list order tie-break, got %q", got)
	}
	if got := InferRegion("ssc constable gd"); got != "" {
		t.Errorf("expected no match, got %q", got)
	}
}

package normalizer

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/project-tktt/job-viewer/internal/domain"
)

func TestMergeDedupFirstSeenWins(t *testing.T) {
	existing := []domain.Job{
		{ID: 7, Title: "A", URL: "https://x/a", Board: "old"},
		{ID: 8, Title: "B", URL: "https://x/b"},
	}
	incoming := []domain.Job{
		{Title: "A2", URL: "https://x/a", Board: "new"},
		{Title: "C", URL: "https://x/c"},
		{Title: "B", URL: "https://x/b"},
	}

	merged := Merge(existing, incoming)
	if len(merged) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(merged))
	}

	wantURLs := []string{"https://x/a", "https://x/b", "https://x/c"}
	for i, job := range merged {
		if job.URL != wantURLs[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantURLs[i], job.URL)
		}
		if job.ID != i+1 {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, job.ID)
		}
	}
	if merged[0].Board != "old" {
		t.Errorf("first occurrence should win, got board %q", merged[0].Board)
	}
	if existing[0].ID != 7 {
		t.Error("Merge must not modify its inputs")
	}
}

func TestMergeTitleFallbackKey(t *testing.T) {
	merged := Merge(
		[]domain.Job{{Title: "No URL job"}},
		[]domain.Job{{Title: "No URL job", Board: "dup"}, {Title: "Other"}},
	)
	if len(merged) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(merged))
	}
	if merged[0].Board != "" || merged[1].Title != "Other" {
		t.Errorf("unexpected merge result: %+v", merged)
	}
}

func TestMergeNoDuplicateKeys(t *testing.T) {
	var a, b []domain.Job
	for i := 0; i < 50; i++ {
		a = append(a, domain.Job{Title: fmt.Sprintf("t%d", i%13), URL: fmt.Sprintf("u%d", i%17)})
		b = append(b, domain.Job{Title: fmt.Sprintf("t%d", i%7)})
	}

	merged := Merge(a, b)
	seen := make(map[string]int)
	for i, job := range merged {
		if prev, ok := seen[job.Key()]; ok {
			t.Fatalf("key %q at %d and %d", job.Key(), prev, i)
		}
		seen[job.Key()] = i
	}
	if len(merged) != 17+7 {
		t.Errorf("expected 24 unique keys, got %d", len(merged))
	}
}

func TestNormalizeLenientFields(t *testing.T) {
	var raw map[string]any
	payload := `{
		"title": "Bank &amp; Insurance 1,200 Posts",
		"board": "IBPS",
		"qualification": ["Graduate", "B.Com"],
		"lastDate": "2024-08-21",
		"url": "https://example.com/ibps",
		"source": "Bank Jobs",
		"postCount": "1,200",
		"ageLimit": ["20-30 years"]
	}`
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatal(err)
	}

	job, ok := NewNormalizer().Normalize(raw)
	if !ok {
		t.Fatal("expected record to normalize")
	}
	if job.Title != "Bank & Insurance 1,200 Posts" {
		t.Errorf("html entities not decoded: %q", job.Title)
	}
	if job.Qualification != "Graduate, B.Com" {
		t.Errorf("qualification: %q", job.Qualification)
	}
	if job.PostCount == nil || *job.PostCount != 1200 {
		t.Errorf("postCount: %v", job.PostCount)
	}
	if job.AgeLimit != "20-30 years" {
		t.Errorf("ageLimit: %q", job.AgeLimit)
	}
}

func TestNormalizeDropsKeyless(t *testing.T) {
	jobs := NewNormalizer().NormalizeAll([]map[string]any{
		{"board": "no key"},
		{"title": "has title", "postCount": "n/a"},
	})
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].PostCount != nil {
		t.Error("unparsable postCount should be absent")
	}
}

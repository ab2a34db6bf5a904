// Package inference fills the derived attributes of a job (post count and
// state) from its free-text fields. Fields that are already set are never
// overwritten, so DeriveFields can be re-run on the full list after every merge.
package inference

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/project-tktt/job-viewer/internal/domain"
)

// postCountRe matches the first number right before "Post"/"Posts"
var postCountRe = regexp.MustCompile(`(?i)(\d[\d,]*)\s*posts?\b`)

// ExtractPostCount returns the post count announced in a title
func ExtractPostCount(title string) (int, bool) {
	m := postCountRe.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// DeriveFields fills PostCount and State when they are unset
func DeriveFields(job *domain.Job) {
	if job.PostCount == nil {
		if n, ok := ExtractPostCount(job.Title); ok {
			job.PostCount = &n
		}
	}

	if job.HasState() {
		return
	}

	// Explicit tag: category pages are labelled with the state name
	if r := MatchRegion(job.Source); r != "" {
		job.State = r
		return
	}

	text := " " + strings.ToLower(job.Title+" "+job.Board) + " "
	if isJammuKashmir(text) {
		job.State = JammuKashmir
		return
	}

	job.State = InferRegion(text)
}

// DeriveAll returns a copy of jobs with DeriveFields applied to each
func DeriveAll(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, len(jobs))
	copy(out, jobs)
	for i := range out {
		DeriveFields(&out[i])
	}
	return out
}

package normalizer

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/project-tktt/job-viewer/internal/common/dedup"
	"github.com/project-tktt/job-viewer/internal/domain"
)

// Normalizer converts raw upstream records to domain.Job and merges lists
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a raw record to a Job.
// Returns false when the record has no dedup key (neither url nor title).
func (n *Normalizer) Normalize(data map[string]any) (domain.Job, bool) {
	job := domain.Job{
		Title:         getString(data, "title", "jobTitle"),
		Board:         getString(data, "board", "organisation", "organization"),
		Qualification: getJoined(data, "qualification", "qual"),
		LastDate:      getString(data, "lastDate", "last_date"),
		URL:           getString(data, "url", "link"),
		Source:        getString(data, "source"),
		State:         getString(data, "state"),
		CompanyName:   getString(data, "companyName"),
		AdvtNo:        getString(data, "advtNo"),
		Salary:        getJoined(data, "salary"),
		AgeLimit:      getJoined(data, "ageLimit"),
		PostName:      getString(data, "postName"),
		NoOfPosts:     getString(data, "noOfPosts"),
	}

	if count, ok := getInt(data, "postCount"); ok && count > 0 {
		job.PostCount = &count
	}

	// Decode HTML entities in text fields
	job.Title = html.UnescapeString(job.Title)
	job.Board = html.UnescapeString(job.Board)
	job.Qualification = html.UnescapeString(job.Qualification)

	if job.Key() == "" {
		return job, false
	}
	return job, true
}

// NormalizeAll converts raw records, dropping those without a key
func (n *Normalizer) NormalizeAll(items []map[string]any) []domain.Job {
	jobs := make([]domain.Job, 0, len(items))
	for _, item := range items {
		if job, ok := n.Normalize(item); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// Merge appends incoming to existing, keeps the first job per dedup key and
// reassigns ids 1..N. Neither input slice is modified.
func Merge(existing, incoming []domain.Job) []domain.Job {
	all := make([]domain.Job, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	return Reindex(dedup.Unique(all))
}

// Reindex assigns ids by 1-based position, in place
func Reindex(jobs []domain.Job) []domain.Job {
	for i := range jobs {
		jobs[i].ID = i + 1
	}
	return jobs
}

// getString tries multiple keys and returns the first non-empty value
func getString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			switch v := val.(type) {
			case string:
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			case float64:
				return strconv.FormatFloat(v, 'f', -1, 64)
			case int:
				return strconv.Itoa(v)
			}
		}
	}
	return ""
}

// getJoined reads a string or a list of strings, joining lists with ", "
func getJoined(data map[string]any, keys ...string) string {
	for _, key := range keys {
		list, ok := data[key].([]any)
		if !ok {
			continue
		}
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" && item != nil {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return getString(data, keys...)
}

// getInt extracts an integer; strings may carry thousands separators
func getInt(data map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			switch v := val.(type) {
			case float64:
				return int(v), true
			case int:
				return v, true
			case string:
				if i, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(v), ",", "")); err == nil {
					return i, true
				}
			}
		}
	}
	return 0, false
}

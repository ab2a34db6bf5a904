package dedup

import (
	"strings"

	"github.com/project-tktt/job-viewer/internal/domain"
)

// Deduplicator tracks dedup keys seen during a single merge pass
type Deduplicator struct {
	seen map[string]struct{}
}

// NewDeduplicator creates a deduplicator sized for roughly n keys
func NewDeduplicator(n int) *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{}, n)}
}

// CheckResult represents the result of checking a job
type CheckResult int

const (
	// ResultNew - key has not been seen in this pass
	ResultNew CheckResult = iota
	// ResultDuplicate - an earlier job already claimed the key
	ResultDuplicate
	// ResultNoKey - job has neither URL nor title
	ResultNoKey
)

// CheckJob checks a job's key and marks it seen when new
func (d *Deduplicator) CheckJob(job domain.Job) CheckResult {
	key := strings.TrimSpace(job.Key())
	if key == "" {
		return ResultNoKey
	}
	if _, ok := d.seen[key]; ok {
		return ResultDuplicate
	}
	d.seen[key] = struct{}{}
	return ResultNew
}

// IsSeen reports whether key was already claimed
func (d *Deduplicator) IsSeen(key string) bool {
	_, ok := d.seen[key]
	return ok
}

// Len returns the number of distinct keys seen
func (d *Deduplicator) Len() int {
	return len(d.seen)
}

// Unique keeps the first job for every key, preserving order.
// Jobs without a key are dropped.
func Unique(jobs []domain.Job) []domain.Job {
	d := NewDeduplicator(len(jobs))
	out := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if d.CheckJob(job) == ResultNew {
			out = append(out, job)
		}
	}
	return out
}

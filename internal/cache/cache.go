// Package cache persists the normalized job list between sessions.
//
// The Cache type enforces the time-to-live and the rule that cache failures
// never interrupt the caller: every storage error is logged and reported as a
// miss (Load) or ignored (Save). Backends only move opaque bytes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/project-tktt/job-viewer/internal/common/normalizer"
	"github.com/project-tktt/job-viewer/internal/domain"
)

// DefaultTTL is the cache validity window
const DefaultTTL = time.Hour

// ErrMiss is returned by backends when no entry is stored
var ErrMiss = errors.New("cache miss")

// Backend stores a single serialized entry
type Backend interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte, ttl time.Duration) error
	Close() error
}

// Entry is the persisted form: jobs without ids plus a millisecond timestamp
type Entry struct {
	Jobs    []domain.Job `json:"jobs"`
	SavedAt int64        `json:"saved_at"`
}

// Cache wraps a backend with TTL and never-fail semantics
type Cache struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache; a nil backend makes every call a no-op miss
func New(backend Backend, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{backend: backend, ttl: ttl, now: time.Now}
}

// Save persists jobs with the current timestamp. Empty lists are not written.
func (c *Cache) Save(ctx context.Context, jobs []domain.Job) {
	if c == nil || c.backend == nil || len(jobs) == 0 {
		return
	}

	stripped := make([]domain.Job, len(jobs))
	copy(stripped, jobs)
	for i := range stripped {
		stripped[i].ID = 0
	}

	data, err := json.Marshal(Entry{Jobs: stripped, SavedAt: c.now().UnixMilli()})
	if err != nil {
		log.Printf("[Cache] Marshal error: %v", err)
		return
	}
	if err := c.backend.Put(ctx, data, c.ttl); err != nil {
		log.Printf("[Cache] Save error: %v", err)
		return
	}
	log.Printf("[Cache] Saved %d jobs", len(jobs))
}

// Load returns the stored jobs when the entry is younger than the TTL.
// Ids are rebuilt by position.
func (c *Cache) Load(ctx context.Context) ([]domain.Job, bool) {
	if c == nil || c.backend == nil {
		return nil, false
	}

	data, err := c.backend.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			log.Printf("[Cache] Load error: %v", err)
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("[Cache] Corrupt entry: %v", err)
		return nil, false
	}
	if entry.SavedAt <= 0 {
		return nil, false
	}

	age := c.now().Sub(time.UnixMilli(entry.SavedAt))
	if age >= c.ttl {
		log.Printf("[Cache] Entry expired (age %v)", age.Round(time.Second))
		return nil, false
	}
	if len(entry.Jobs) == 0 {
		return nil, false
	}

	return normalizer.Reindex(entry.Jobs), true
}

// Close releases the backend
func (c *Cache) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Close()
}

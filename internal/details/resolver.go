// Package details resolves the extended payload for a single job.
//
// Lookup is cache-first: a cached payload never triggers a network call.
// Otherwise each configured API base is tried in order and the first
// success wins. Every payload is sanitized before it is stored or returned.
package details

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/project-tktt/job-viewer/internal/common/cleaner"
	"github.com/project-tktt/job-viewer/internal/common/extractor"
	"github.com/project-tktt/job-viewer/internal/domain"
)

// ErrUnavailable means no lookup could be attempted for the job
var ErrUnavailable = errors.New("details unavailable")

// Status describes how a Result was produced
type Status int

const (
	StatusCached Status = iota
	StatusFetched
	// StatusUnavailable: no API base configured or the job has no real URL
	StatusUnavailable
	// StatusFailed: every API base failed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCached:
		return "cached"
	case StatusFetched:
		return "fetched"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Fetcher looks up one job's details on one API base
type Fetcher interface {
	APIBases() []string
	FetchDetail(ctx context.Context, base, jobURL string) (*domain.Detail, error)
}

// Result is the outcome of Resolve. Job carries the extended fields on success.
type Result struct {
	Job    domain.Job
	Detail *domain.Detail
	Status Status
	Err    error
}

// OK reports whether a payload was found
func (r Result) OK() bool {
	return r.Detail != nil
}

// Resolver implements cache-first details lookup
type Resolver struct {
	cache   *Cache
	fetcher Fetcher
	cleaner *cleaner.Cleaner
}

// NewResolver creates a resolver. fetcher may be nil for offline use.
func NewResolver(cache *Cache, fetcher Fetcher) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		cache:   cache,
		fetcher: fetcher,
		cleaner: cleaner.NewCleaner(),
	}
}

// Cache returns the underlying details cache
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// ReplaceAll sanitizes a bulk details map and swaps it into the cache
func (r *Resolver) ReplaceAll(entries map[string]*domain.Detail) {
	prepared := make(map[string]*domain.Detail, len(entries))
	for jobURL, d := range entries {
		if jobURL == "" || d == nil {
			continue
		}
		r.prepare(jobURL, d)
		prepared[jobURL] = d
	}
	r.cache.ReplaceAll(prepared)
	log.Printf("[Details] Cached %d payloads", len(prepared))
}

// Resolve returns job enriched with its details
func (r *Resolver) Resolve(ctx context.Context, job domain.Job) Result {
	if d, ok := r.cache.Get(job.URL); ok {
		return r.result(job, d, StatusCached)
	}

	if !isRealURL(job.URL) || r.fetcher == nil || len(r.fetcher.APIBases()) == 0 {
		return Result{Job: job, Status: StatusUnavailable, Err: ErrUnavailable}
	}

	var errs []error
	for _, base := range r.fetcher.APIBases() {
		d, err := r.fetcher.FetchDetail(ctx, base, job.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", base, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		r.prepare(job.URL, d)
		r.cache.Put(job.URL, d)
		return r.result(job, d, StatusFetched)
	}

	err := fmt.Errorf("fetch details for %s: %w", job.URL, errors.Join(errs...))
	log.Printf("[Details] %v", err)
	return Result{Job: job, Status: StatusFailed, Err: err}
}

func (r *Resolver) result(job domain.Job, d *domain.Detail, status Status) Result {
	job.ApplyDetail(d)
	return Result{Job: job, Detail: d, Status: status}
}

// prepare sanitizes d in place and fills links from its html
func (r *Resolver) prepare(jobURL string, d *domain.Detail) {
	r.cleaner.CleanDetail(d)
	if len(d.ImportantLinks) == 0 && d.HTML != "" {
		d.ImportantLinks = extractor.ExtractLinks(d.HTML, jobURL)
	}
	if len(d.OfficialWebsites) == 0 {
		d.OfficialWebsites = extractor.OfficialWebsites(d.ImportantLinks)
	}
}

func isRealURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

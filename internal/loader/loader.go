// Package loader acquires job records and keeps them fresh.
//
// Startup follows Idle → CacheCheck → {BackgroundRefresh | CacheMissFetch}
// → Ready. Once ready, Run drives a periodic full refresh and a periodic
// incremental growth loop. Manual LoadMore shares the growth loop's
// in-flight flag so the two never overlap.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/project-tktt/job-viewer/internal/cache"
	"github.com/project-tktt/job-viewer/internal/common/inference"
	"github.com/project-tktt/job-viewer/internal/common/normalizer"
	"github.com/project-tktt/job-viewer/internal/domain"
	"github.com/project-tktt/job-viewer/internal/viewer"
	"golang.org/x/sync/errgroup"
)

// ErrBusy is returned when an incremental fetch is already in flight
var ErrBusy = errors.New("incremental fetch in flight")

// Source provides snapshots, the bulk details map and incremental pages
type Source interface {
	FetchSnapshot(ctx context.Context) ([]map[string]any, error)
	FetchDetailsMap(ctx context.Context) (map[string]*domain.Detail, error)
	FetchPage(ctx context.Context, offset int) (*domain.Page, error)
}

// DetailsSink receives the bulk details map after each refresh
type DetailsSink interface {
	ReplaceAll(entries map[string]*domain.Detail)
}

// Options holds loader timing
type Options struct {
	RefreshInterval time.Duration
	GrowthInterval  time.Duration
	PagePause       time.Duration
	// Online enables the recurring timers
	Online bool
}

// Loader implements the snapshot state machine
type Loader struct {
	state      *viewer.State
	source     Source
	cache      *cache.Cache
	details    DetailsSink
	normalizer *normalizer.Normalizer
	opts       Options

	phase    atomic.Int32
	inFlight atomic.Bool

	incMu sync.Mutex
	inc   Incremental

	wg sync.WaitGroup
}

// New creates a loader. cache and details may be nil.
func New(state *viewer.State, src Source, c *cache.Cache, details DetailsSink, opts Options) *Loader {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Minute
	}
	if opts.GrowthInterval <= 0 {
		opts.GrowthInterval = 15 * time.Second
	}
	if opts.PagePause < 0 {
		opts.PagePause = 0
	}
	start := 0
	return &Loader{
		state:      state,
		source:     src,
		cache:      c,
		details:    details,
		normalizer: normalizer.NewNormalizer(),
		opts:       opts,
		inc:        Incremental{NextOffset: &start},
	}
}

// Phase returns the current startup phase
func (l *Loader) Phase() Phase {
	return Phase(l.phase.Load())
}

func (l *Loader) setPhase(p Phase) {
	l.phase.Store(int32(p))
	log.Printf("[Loader] Phase: %s", p)
}

// Start runs the startup sequence. On a cache hit it returns as soon as the
// cached records are exposed and refreshes in the background; on a miss it
// blocks until the network fetch completes.
func (l *Loader) Start(ctx context.Context) {
	l.setPhase(PhaseCacheCheck)

	if jobs, ok := l.cache.Load(ctx); ok {
		log.Printf("[Loader] Cache hit: %d jobs", len(jobs))
		l.state.Replace(inference.DeriveAll(jobs), false)
		l.state.SetLoading(false)

		l.setPhase(PhaseBackgroundRefresh)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			if err := l.Refresh(ctx); err != nil {
				log.Printf("[Loader] Background refresh failed: %v", err)
			}
			l.setPhase(PhaseReady)
		}()
		return
	}

	l.setPhase(PhaseCacheMissFetch)
	l.state.SetLoading(true)
	err := l.Refresh(ctx)
	if err != nil {
		log.Printf("[Loader] Initial fetch failed: %v", err)
	}
	if err != nil || len(l.state.Records()) == 0 {
		l.state.Replace(nil, false)
	}
	l.state.SetLoading(false)
	l.setPhase(PhaseReady)
}

// Wait blocks until background work started by Start has finished
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Refresh fetches the snapshot and the details map concurrently, merges the
// snapshot into the current records and persists the result. A failed
// snapshot leaves the records untouched; a failed details map only skips
// the details replacement.
func (l *Loader) Refresh(ctx context.Context) error {
	var (
		raw     []map[string]any
		details map[string]*domain.Detail
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := l.source.FetchSnapshot(gctx)
		if err != nil {
			return err
		}
		raw = items
		return nil
	})
	g.Go(func() error {
		m, err := l.source.FetchDetailsMap(gctx)
		if err != nil {
			log.Printf("[Loader] Details map fetch failed: %v", err)
			return nil
		}
		details = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	incoming := l.normalizer.NormalizeAll(raw)
	before, after := l.state.Update(func(cur []domain.Job) []domain.Job {
		return inference.DeriveAll(normalizer.Merge(cur, incoming))
	}, true)
	log.Printf("[Loader] Refresh: %d fetched, %d -> %d jobs", len(incoming), before, after)

	l.cache.Save(ctx, l.state.Records())
	if details != nil && l.details != nil {
		l.details.ReplaceAll(details)
	}
	return nil
}

// Run performs Start and then drives the periodic refresh and growth until
// ctx is cancelled. Offline loaders only run Start.
func (l *Loader) Run(ctx context.Context) error {
	l.Start(ctx)
	l.syncLoadMore()

	if !l.opts.Online {
		log.Println("[Loader] Offline, timers disabled")
		l.Wait()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.every(gctx, l.opts.RefreshInterval, func() {
			if err := l.Refresh(gctx); err != nil {
				log.Printf("[Loader] Periodic refresh failed: %v", err)
			}
		})
	})
	g.Go(func() error {
		return l.every(gctx, l.opts.GrowthInterval, func() {
			if !l.Incremental().More() {
				return
			}
			if _, err := l.Grow(gctx); err != nil && !errors.Is(err, ErrBusy) && gctx.Err() == nil {
				log.Printf("[Loader] Growth failed: %v", err)
			}
		})
	})

	err := g.Wait()
	l.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (l *Loader) every(ctx context.Context, interval time.Duration, fn func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn()
		}
	}
}

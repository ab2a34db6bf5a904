package loader

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/project-tktt/job-viewer/internal/common/inference"
	"github.com/project-tktt/job-viewer/internal/common/normalizer"
	"github.com/project-tktt/job-viewer/internal/domain"
	"github.com/project-tktt/job-viewer/internal/source"
	"github.com/project-tktt/job-viewer/internal/viewer"
)

// Incremental tracks the offset cursor of the paged endpoint
type Incremental struct {
	// NextOffset is nil once the endpoint reports no further pages
	NextOffset *int
	// StillProducing is set while the upstream is still collecting records
	StillProducing bool

	// resume is where the last page ended, used when NextOffset is nil
	// but the upstream is still producing
	resume int
}

// More reports whether another page fetch should be attempted
func (i Incremental) More() bool {
	return i.NextOffset != nil || i.StillProducing
}

func (i Incremental) offset() int {
	if i.NextOffset != nil {
		return *i.NextOffset
	}
	return i.resume
}

// Incremental returns a copy of the cursor
func (l *Loader) Incremental() Incremental {
	l.incMu.Lock()
	defer l.incMu.Unlock()
	return l.inc
}

// Grow fetches pages until the endpoint is exhausted or a page adds no new
// records, pausing between pages.
func (l *Loader) Grow(ctx context.Context) (int, error) {
	if !l.inFlight.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer l.inFlight.Store(false)
	defer l.syncLoadMore()

	total := 0
	for l.Incremental().More() {
		added, err := l.fetchPage(ctx)
		total += added
		if err != nil {
			return total, err
		}
		if added == 0 || !l.Incremental().More() {
			break
		}

		timer := time.NewTimer(l.opts.PagePause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return total, ctx.Err()
		case <-timer.C:
		}
	}

	if total > 0 {
		log.Printf("[Loader] Growth added %d jobs", total)
	}
	return total, nil
}

// LoadMore fetches a single page on demand. The load-more control is
// disabled while the request is in flight.
func (l *Loader) LoadMore(ctx context.Context) (int, error) {
	if !l.inFlight.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer l.inFlight.Store(false)
	defer l.syncLoadMore()

	if !l.Incremental().More() {
		return 0, nil
	}

	l.state.SetLoadMore(true, viewer.LabelLoading)
	return l.fetchPage(ctx)
}

// fetchPage requests one page, merges it and advances the cursor
func (l *Loader) fetchPage(ctx context.Context) (int, error) {
	offset := l.Incremental().offset()

	page, err := l.source.FetchPage(ctx, offset)
	if err != nil {
		if errors.Is(err, source.ErrNoBases) {
			l.setIncremental(Incremental{})
		}
		return 0, err
	}

	incoming := l.normalizer.NormalizeAll(page.Jobs)
	before, after := l.state.Update(func(cur []domain.Job) []domain.Job {
		return inference.DeriveAll(normalizer.Merge(cur, incoming))
	}, true)

	l.setIncremental(Incremental{
		NextOffset:     page.NextOffset,
		StillProducing: page.Loading,
		resume:         offset + len(page.Jobs),
	})

	added := after - before
	if added > 0 {
		l.cache.Save(ctx, l.state.Records())
	}
	return added, nil
}

func (l *Loader) setIncremental(inc Incremental) {
	l.incMu.Lock()
	l.inc = inc
	l.incMu.Unlock()
}

// syncLoadMore sets the control from the cursor
func (l *Loader) syncLoadMore() {
	if l.Incremental().More() {
		l.state.SetLoadMore(false, viewer.LabelLoadMore)
	} else {
		l.state.SetLoadMore(true, viewer.LabelNoMore)
	}
}

// Package views counts product page views, deduplicated per session.
package views

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
)

// Repository persists per-product view counters.
type Repository interface {
	Increment(ctx context.Context, slug string) error
	Count(ctx context.Context, slug string) (int64, error)
}

// Tracker increments a product's view counter at most once per session.
//
// Dedup runs through a bloom filter keyed on session+slug, keeping repeat
// views off the database entirely. False positives drop a small fraction of
// legitimate first views, which is acceptable for an analytics counter.
type Tracker struct {
	repo Repository

	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewTracker creates a Tracker sized for the expected number of distinct
// (session, product) pairs per process lifetime.
func NewTracker(repo Repository, expectedViews uint, fpRate float64) *Tracker {
	return &Tracker{
		repo:   repo,
		filter: bloom.NewWithEstimates(expectedViews, fpRate),
	}
}

// Track records a view of slug by the given session and returns the current
// view count. Repeat views within the process lifetime skip the increment but
// still report the stored count.
func (t *Tracker) Track(ctx context.Context, sessionID, slug string) (int64, error) {
	key := []byte(sessionID + "|" + slug)

	t.mu.Lock()
	seen := t.filter.TestOrAdd(key)
	t.mu.Unlock()

	if !seen {
		if err := t.repo.Increment(ctx, slug); err != nil {
			return 0, errors.Wrap(err, "increment views")
		}
	}
	count, err := t.repo.Count(ctx, slug)
	if err != nil {
		return 0, errors.Wrap(err, "count views")
	}
	return count, nil
}

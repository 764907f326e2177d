package bibleapi

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

//go:generate mockgen -source=backfill.go -destination=../mocks/bibleapi/mock_backfill.go -package=mock_bibleapi

type Fetcher interface {
	Lookup(ctx context.Context, ref bible.Reference) (Verse, error)
}

type Store interface {
	Put(ref bible.Reference, translation verse.Translation, text string)
}

const (
	defaultQueueSize = 16
	// failures are not requested again before this much time passed
	defaultRetryAfter = 10 * time.Minute
)

// Backfiller fetches missing KJV text in the background. Requests never
// block the caller.
type Backfiller struct {
	fetcher Fetcher
	store   Store
	notify  func()
	logger  *slog.Logger

	requests   chan bible.Reference
	retryAfter time.Duration
	now        func() time.Time

	mu       sync.Mutex
	inflight map[bible.Reference]struct{}
	failed   map[bible.Reference]time.Time
}

// NewBackfiller builds a backfiller. notify runs after each successful
// fetch and may be nil.
func NewBackfiller(fetcher Fetcher, store Store, notify func(), logger *slog.Logger) *Backfiller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backfiller{
		fetcher:    fetcher,
		store:      store,
		notify:     notify,
		logger:     logger,
		requests:   make(chan bible.Reference, defaultQueueSize),
		retryAfter: defaultRetryAfter,
		now:        time.Now,
		inflight:   make(map[bible.Reference]struct{}),
		failed:     make(map[bible.Reference]time.Time),
	}
}

// Request queues ref. It returns false when ref is already queued, failed
// recently, or the queue is full.
func (b *Backfiller) Request(ref bible.Reference) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.inflight[ref]; ok {
		return false
	}
	if failedAt, ok := b.failed[ref]; ok && b.now().Sub(failedAt) < b.retryAfter {
		return false
	}

	select {
	case b.requests <- ref:
		b.inflight[ref] = struct{}{}
		return true
	default:
		b.logger.Warn("backfill queue is full", "reference", ref.String())
		return false
	}
}

// Run consumes requests until ctx is done.
func (b *Backfiller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ref := <-b.requests:
			err := b.backfill(ctx, ref)

			b.mu.Lock()
			delete(b.inflight, ref)
			if err != nil {
				b.failed[ref] = b.now()
			} else {
				delete(b.failed, ref)
			}
			b.mu.Unlock()

			if err != nil {
				b.logger.Error("failed to backfill verse", "reference", ref.String(), "error", err)
				continue
			}
			b.logger.Info("backfilled verse from API", "reference", ref.String())
			if b.notify != nil {
				b.notify()
			}
		}
	}
}

func (b *Backfiller) backfill(ctx context.Context, ref bible.Reference) error {
	v, err := b.fetcher.Lookup(ctx, ref)
	if err != nil {
		return fmt.Errorf("fetcher.Lookup() > %w", err)
	}

	texts := v.Texts(ref)
	for _, want := range ref.Verses() {
		if texts[want] == "" {
			return fmt.Errorf("response for %s has no text for %s", ref, want)
		}
	}
	for r, text := range texts {
		b.store.Put(r, verse.KJV, text)
	}
	return nil
}

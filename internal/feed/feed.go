// Package feed models the store's real-time query subscriptions as
// restartable, cancellable snapshot streams: each subscription re-runs its
// fetch on an interval and delivers every result, success or failure, in
// arrival order on a single channel. Cancellation is explicit and is the only
// way to stop delivery. There is no ordering guarantee across subscriptions.
package feed

import (
	"context"
	"time"
)

// Snapshot is one delivery from a subscription. Err is set instead of Records
// when the underlying fetch failed; consumers must treat that as a distinct
// error state rather than an empty result.
type Snapshot[T any] struct {
	Records []T
	Err     error
	At      time.Time
}

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type Subscription[T any] struct {
	snapshots chan Snapshot[T]
	cancel    context.CancelFunc
}

// Subscribe starts delivering snapshots immediately and then on every tick of
// interval until Stop is called or ctx is done. The returned channel is closed
// once delivery has fully stopped.
func Subscribe[T any](ctx context.Context, fetch FetchFunc[T], interval time.Duration) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)

	s := &Subscription[T]{
		snapshots: make(chan Snapshot[T], 1),
		cancel:    cancel,
	}

	go s.run(ctx, fetch, interval)

	return s
}

func (s *Subscription[T]) run(ctx context.Context, fetch FetchFunc[T], interval time.Duration) {
	defer close(s.snapshots)

	if !s.deliver(ctx, fetch) {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.deliver(ctx, fetch) {
				return
			}
		}
	}
}

func (s *Subscription[T]) deliver(ctx context.Context, fetch FetchFunc[T]) bool {
	records, err := fetch(ctx)
	if ctx.Err() != nil {
		// Result arrived after cancellation; discard rather than deliver to a
		// consumer that already resigned.
		return false
	}

	snap := Snapshot[T]{Records: records, Err: err, At: time.Now()}

	select {
	case s.snapshots <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Subscription[T]) Snapshots() <-chan Snapshot[T] {
	return s.snapshots
}

// Stop detaches the subscription. No further snapshots are delivered after the
// channel closes.
func (s *Subscription[T]) Stop() {
	s.cancel()
}

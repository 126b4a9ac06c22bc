package directory

import (
	"context"
	"errors"
	"sync"

	"bloodlink/internal/feed"
	"bloodlink/pkg/types"
)

// State distinguishes "first snapshot not here yet" from "subscription broke"
// from "ready, possibly with zero records".
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

// ErrNotReady is returned while the first snapshot has not arrived.
var ErrNotReady = errors.New("waiting for first snapshot")

// DonorBoard consumes the available-donor feed and serves filtered reads.
type DonorBoard struct {
	mu     sync.RWMutex
	state  State
	donors []*types.Donor
	err    error
}

func NewDonorBoard() *DonorBoard {
	return &DonorBoard{state: StateLoading}
}

// Run consumes snapshots until the subscription channel closes. Intended to
// run on its own goroutine for the lifetime of the server.
func (b *DonorBoard) Run(ctx context.Context, sub *feed.Subscription[*types.Donor]) {
	for {
		select {
		case <-ctx.Done():
			sub.Stop()
			return
		case snap, ok := <-sub.Snapshots():
			if !ok {
				return
			}
			b.apply(snap)
		}
	}
}

func (b *DonorBoard) apply(snap feed.Snapshot[*types.Donor]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if snap.Err != nil {
		// Keep the last snapshot around but stop presenting it as current.
		b.state = StateFailed
		b.err = snap.Err
		return
	}

	b.state = StateReady
	b.err = nil
	b.donors = snap.Records
}

// Donors returns the filtered view of the current snapshot along with the
// board state. Callers must not render records unless the state is ready.
func (b *DonorBoard) Donors(f Filter) ([]*types.Donor, State, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch b.state {
	case StateLoading:
		return nil, StateLoading, ErrNotReady
	case StateFailed:
		return nil, StateFailed, b.err
	}

	return FilterDonors(b.donors, f), StateReady, nil
}

// Snapshot returns the unfiltered current records, for callers (the matcher)
// that need the whole live collection.
func (b *DonorBoard) Snapshot() ([]*types.Donor, State, error) {
	return b.Donors(DefaultFilter())
}

// RequestBoard is the request-side counterpart of DonorBoard; reads are
// additionally sorted by urgency.
type RequestBoard struct {
	mu       sync.RWMutex
	state    State
	requests []*types.BloodRequest
	err      error
}

func NewRequestBoard() *RequestBoard {
	return &RequestBoard{state: StateLoading}
}

func (b *RequestBoard) Run(ctx context.Context, sub *feed.Subscription[*types.BloodRequest]) {
	for {
		select {
		case <-ctx.Done():
			sub.Stop()
			return
		case snap, ok := <-sub.Snapshots():
			if !ok {
				return
			}
			b.apply(snap)
		}
	}
}

func (b *RequestBoard) apply(snap feed.Snapshot[*types.BloodRequest]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if snap.Err != nil {
		b.state = StateFailed
		b.err = snap.Err
		return
	}

	b.state = StateReady
	b.err = nil
	b.requests = snap.Records
}

func (b *RequestBoard) Requests(f Filter) ([]*types.BloodRequest, State, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch b.state {
	case StateLoading:
		return nil, StateLoading, ErrNotReady
	case StateFailed:
		return nil, StateFailed, b.err
	}

	return FilterRequests(b.requests, f), StateReady, nil
}

func (b *RequestBoard) Snapshot() ([]*types.BloodRequest, State, error) {
	return b.Requests(DefaultFilter())
}

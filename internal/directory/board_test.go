package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodlink/internal/feed"
	"bloodlink/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonorBoard_StartsLoading(t *testing.T) {
	board := NewDonorBoard()

	donors, state, err := board.Donors(DefaultFilter())

	assert.Nil(t, donors)
	assert.Equal(t, StateLoading, state)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestDonorBoard_ServesFilteredSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetch := func(ctx context.Context) ([]*types.Donor, error) {
		return []*types.Donor{
			donor("d1", types.BloodGroupOPositive, "Dhaka"),
			donor("d2", types.BloodGroupABNegative, "Sylhet"),
		}, nil
	}

	board := NewDonorBoard()
	sub := feed.Subscribe(ctx, fetch, 50*time.Millisecond)
	go board.Run(ctx, sub)

	require.Eventually(t, func() bool {
		_, state, _ := board.Donors(DefaultFilter())
		return state == StateReady
	}, time.Second, 5*time.Millisecond)

	donors, state, err := board.Donors(Filter{BloodGroup: "O+"})
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)
	require.Len(t, donors, 1)
	assert.Equal(t, "d1", donors[0].ID)
}

func TestDonorBoard_EmptySnapshotIsReadyNotLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetch := func(ctx context.Context) ([]*types.Donor, error) {
		return []*types.Donor{}, nil
	}

	board := NewDonorBoard()
	sub := feed.Subscribe(ctx, fetch, 50*time.Millisecond)
	go board.Run(ctx, sub)

	require.Eventually(t, func() bool {
		_, state, _ := board.Donors(DefaultFilter())
		return state == StateReady
	}, time.Second, 5*time.Millisecond)

	donors, state, err := board.Donors(DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)
	assert.Empty(t, donors)
}

func TestDonorBoard_FetchFailureMovesToFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetchErr := errors.New("connection refused")
	fetch := func(ctx context.Context) ([]*types.Donor, error) {
		return nil, fetchErr
	}

	board := NewDonorBoard()
	sub := feed.Subscribe(ctx, fetch, 50*time.Millisecond)
	go board.Run(ctx, sub)

	require.Eventually(t, func() bool {
		_, state, _ := board.Donors(DefaultFilter())
		return state == StateFailed
	}, time.Second, 5*time.Millisecond)

	donors, state, err := board.Donors(DefaultFilter())
	assert.Nil(t, donors)
	assert.Equal(t, StateFailed, state)
	assert.ErrorIs(t, err, fetchErr)
}

func TestRequestBoard_SnapshotIsUrgencySorted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base := time.Now()
	fetch := func(ctx context.Context) ([]*types.BloodRequest, error) {
		return []*types.BloodRequest{
			request("low", types.BloodGroupOPositive, "Dhaka", types.UrgencyLow, base),
			request("urgent", types.BloodGroupOPositive, "Dhaka", types.UrgencyUrgent, base),
		}, nil
	}

	board := NewRequestBoard()
	sub := feed.Subscribe(ctx, fetch, 50*time.Millisecond)
	go board.Run(ctx, sub)

	require.Eventually(t, func() bool {
		_, state, _ := board.Snapshot()
		return state == StateReady
	}, time.Second, 5*time.Millisecond)

	requests, state, err := board.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)
	require.Len(t, requests, 2)
	assert.Equal(t, "urgent", requests[0].ID)
	assert.Equal(t, "low", requests[1].ID)
}

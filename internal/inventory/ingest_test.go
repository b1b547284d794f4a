package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantTwiceFailsWithDuplicateKey(t *testing.T) {
	ctx := context.Background()
	ing := NewLeaseIngester(memLeases{}, IngestOptions{}, zerolog.Nop())

	require.NoError(t, ing.Grant(ctx, "aa", "10.0.0.5", "foo"))
	assert.ErrorIs(t, ing.Grant(ctx, "aa", "10.0.0.5", "foo"), ErrDuplicateKey)
}

func TestRestateTwiceLeavesLeaseUnchanged(t *testing.T) {
	ctx := context.Background()
	leases := memLeases{}
	ing := NewLeaseIngester(leases, IngestOptions{}, zerolog.Nop())

	require.NoError(t, ing.Restate(ctx, "aa", "10.0.0.5", "foo"))
	require.NoError(t, ing.Restate(ctx, "aa", "10.0.0.5", "foo"))

	assert.Equal(t, memLeases{"aa": {MAC: "aa", IP: "10.0.0.5", Hostname: "foo"}}, leases)
}

func TestRestateKeepsStaleLeaseByDefault(t *testing.T) {
	ctx := context.Background()
	leases := memLeases{"aa": {MAC: "aa", IP: "10.0.0.5", Hostname: "foo"}}
	ing := NewLeaseIngester(leases, IngestOptions{}, zerolog.Nop())

	require.NoError(t, ing.Restate(ctx, "aa", "10.0.0.6", "foo"))
	assert.Equal(t, "10.0.0.5", leases["aa"].IP)
}

func TestRestateUpdatesOnMismatchWhenEnabled(t *testing.T) {
	ctx := context.Background()
	leases := memLeases{"aa": {MAC: "aa", IP: "10.0.0.5", Hostname: "foo"}}
	ing := NewLeaseIngester(leases, IngestOptions{UpdateOnMismatch: true}, zerolog.Nop())

	require.NoError(t, ing.Restate(ctx, "aa", "10.0.0.6", "bar"))
	assert.Equal(t, Lease{MAC: "aa", IP: "10.0.0.6", Hostname: "bar"}, leases["aa"])
}

func TestRestateMatchingLeaseSkipsUpdate(t *testing.T) {
	updated := false
	repo := stubLeases{
		insertFn: func(context.Context, Lease) error { return ErrDuplicateKey },
		findFn: func(context.Context, string) (Lease, error) {
			return Lease{MAC: "aa", IP: "10.0.0.5", Hostname: "foo"}, nil
		},
		updateFn: func(context.Context, Lease) (int64, error) {
			updated = true
			return 1, nil
		},
	}
	ing := NewLeaseIngester(repo, IngestOptions{UpdateOnMismatch: true}, zerolog.Nop())

	require.NoError(t, ing.Restate(context.Background(), "aa", "10.0.0.5", "foo"))
	assert.False(t, updated)
}

func TestRestatePropagatesOtherErrors(t *testing.T) {
	repo := stubLeases{
		insertFn: func(context.Context, Lease) error { return ErrStoreUnavailable },
	}
	ing := NewLeaseIngester(repo, IngestOptions{}, zerolog.Nop())

	err := ing.Restate(context.Background(), "aa", "10.0.0.5", "foo")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGrantPropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("disk I/O error")
	repo := stubLeases{
		insertFn: func(context.Context, Lease) error { return storeErr },
	}
	ing := NewLeaseIngester(repo, IngestOptions{}, zerolog.Nop())

	assert.Same(t, storeErr, ing.Grant(context.Background(), "aa", "10.0.0.5", "foo"))
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	leases := memLeases{
		"aa": {MAC: "aa", IP: "10.0.0.5"},
		"bb": {MAC: "bb", IP: "10.0.0.6"},
	}
	ing := NewLeaseIngester(leases, IngestOptions{}, zerolog.Nop())

	require.NoError(t, ing.Release(ctx, "aa"))
	assert.Equal(t, memLeases{"bb": {MAC: "bb", IP: "10.0.0.6"}}, leases)

	err := ing.Release(ctx, "aa")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "aa")
}

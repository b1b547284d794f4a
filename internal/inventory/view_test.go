package inventory

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewList(t *testing.T) {
	v := NewView(stubHosts{hosts: allHosts})

	hosts, err := v.List(context.Background(), Filter{Known: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "02", "03"}, macs(hosts))

	known, err := v.Known(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "02", "03"}, macs(known))

	groups, err := v.Groups(context.Background(), false, true)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"lan": {"a", "b"}, "iot": {"b"}}, groups)
}

func TestViewPropagatesStoreErrors(t *testing.T) {
	v := NewView(stubHosts{err: ErrStoreUnavailable})

	_, err := v.List(context.Background(), Filter{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = v.Groups(context.Background(), true, false)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = v.Known(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestHookHandler(t *testing.T) {
	ctx := context.Background()
	leases := memLeases{}
	h := NewHookHandler(NewLeaseIngester(leases, IngestOptions{}, zerolog.Nop()))

	assert.True(t, h.Handles(VerbAdd))
	assert.True(t, h.Handles(VerbOld))
	assert.True(t, h.Handles(VerbDel))
	assert.False(t, h.Handles("init"))
	assert.False(t, h.Handles("tftp"))

	require.NoError(t, h.Handle(ctx, VerbAdd, []string{"aa", "10.0.0.5", "foo"}))
	assert.ErrorIs(t, h.Handle(ctx, VerbAdd, []string{"aa", "10.0.0.5", "foo"}), ErrDuplicateKey)
	require.NoError(t, h.Handle(ctx, VerbOld, []string{"aa", "10.0.0.5", "foo"}))

	// dnsmasq leaves the hostname off when the client sent none
	require.NoError(t, h.Handle(ctx, VerbOld, []string{"bb", "10.0.0.6"}))
	assert.Equal(t, Lease{MAC: "bb", IP: "10.0.0.6"}, leases["bb"])

	require.NoError(t, h.Handle(ctx, VerbDel, []string{"aa", "10.0.0.5", "foo"}))
	assert.ErrorIs(t, h.Handle(ctx, VerbDel, []string{"aa"}), ErrNotFound)

	assert.ErrorIs(t, h.Handle(ctx, VerbAdd, []string{"cc"}), ErrInvalidInput)
	assert.ErrorIs(t, h.Handle(ctx, VerbDel, nil), ErrInvalidInput)
	assert.ErrorIs(t, h.Handle(ctx, "init", nil), ErrInvalidInput)
}

package inventory

import (
	"context"
	"fmt"
)

type stubLeases struct {
	insertFn func(context.Context, Lease) error
	updateFn func(context.Context, Lease) (int64, error)
	deleteFn func(context.Context, string) (int64, error)
	findFn   func(context.Context, string) (Lease, error)
}

func (s stubLeases) InsertLease(ctx context.Context, lease Lease) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, lease)
}

func (s stubLeases) UpdateLease(ctx context.Context, lease Lease) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, lease)
}

func (s stubLeases) DeleteLease(ctx context.Context, mac string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, mac)
}

func (s stubLeases) FindLease(ctx context.Context, mac string) (Lease, error) {
	if s.findFn == nil {
		return Lease{}, ErrNotFound
	}
	return s.findFn(ctx, mac)
}

// memLeases behaves like the leases table: mac is the primary key.
type memLeases map[string]Lease

func (m memLeases) InsertLease(_ context.Context, lease Lease) error {
	if _, ok := m[lease.MAC]; ok {
		return fmt.Errorf("%w: insert lease %s", ErrDuplicateKey, lease.MAC)
	}
	m[lease.MAC] = lease
	return nil
}

func (m memLeases) UpdateLease(_ context.Context, lease Lease) (int64, error) {
	if _, ok := m[lease.MAC]; !ok {
		return 0, nil
	}
	m[lease.MAC] = lease
	return 1, nil
}

func (m memLeases) DeleteLease(_ context.Context, mac string) (int64, error) {
	if _, ok := m[mac]; !ok {
		return 0, nil
	}
	delete(m, mac)
	return 1, nil
}

func (m memLeases) FindLease(_ context.Context, mac string) (Lease, error) {
	lease, ok := m[mac]
	if !ok {
		return Lease{}, fmt.Errorf("%w: %s", ErrNotFound, mac)
	}
	return lease, nil
}

type stubMappings struct {
	insertFn func(context.Context, Mapping) error
	updateFn func(context.Context, Mapping) (int64, error)
	deleteFn func(context.Context, string) (int64, error)
	listFn   func(context.Context) ([]Mapping, error)
}

func (s stubMappings) InsertMapping(ctx context.Context, m Mapping) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, m)
}

func (s stubMappings) UpdateMapping(ctx context.Context, m Mapping) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, m)
}

func (s stubMappings) DeleteMapping(ctx context.Context, mac string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, mac)
}

func (s stubMappings) ListMappings(ctx context.Context) ([]Mapping, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

type stubGroups struct {
	insertFn func(context.Context, GroupMember) error
	deleteFn func(context.Context, GroupMember) (int64, error)
	listFn   func(context.Context) ([]GroupMember, error)
}

func (s stubGroups) InsertGroupMember(ctx context.Context, g GroupMember) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, g)
}

func (s stubGroups) DeleteGroupMember(ctx context.Context, g GroupMember) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, g)
}

func (s stubGroups) ListGroupMembers(ctx context.Context) ([]GroupMember, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

type stubHosts struct {
	hosts []Host
	err   error
}

func (s stubHosts) Hosts(context.Context) ([]Host, error) {
	return s.hosts, s.err
}

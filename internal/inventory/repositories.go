package inventory

import "context"

// Update and delete methods report the number of affected rows. Zero rows is
// not an error at the repository level; services turn it into ErrNotFound.

type LeaseRepository interface {
	InsertLease(ctx context.Context, lease Lease) error
	UpdateLease(ctx context.Context, lease Lease) (int64, error)
	DeleteLease(ctx context.Context, mac string) (int64, error)
	FindLease(ctx context.Context, mac string) (Lease, error)
}

type MappingRepository interface {
	InsertMapping(ctx context.Context, mapping Mapping) error
	UpdateMapping(ctx context.Context, mapping Mapping) (int64, error)
	DeleteMapping(ctx context.Context, mac string) (int64, error)
	ListMappings(ctx context.Context) ([]Mapping, error)
}

type GroupRepository interface {
	InsertGroupMember(ctx context.Context, member GroupMember) error
	DeleteGroupMember(ctx context.Context, member GroupMember) (int64, error)
	ListGroupMembers(ctx context.Context) ([]GroupMember, error)
}

type HostRepository interface {
	Hosts(ctx context.Context) ([]Host, error)
}

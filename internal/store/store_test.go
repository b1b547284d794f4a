package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "inventory.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	s, err := Open(Config{DSN: path})
	require.NoError(t, err)
	require.NoError(t, s.InsertLease(context.Background(), inventory.Lease{MAC: "aa", IP: "10.0.0.1"}))
	require.NoError(t, s.Close())

	s, err = Open(Config{DSN: path})
	require.NoError(t, err)
	defer s.Close()

	lease, err := s.FindLease(context.Background(), "aa")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", lease.IP)
	assert.Equal(t, DriverSQLite, s.Driver())
	assert.Equal(t, path, s.Path())
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql"})
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"/var/lib/inventory/inventory.db", "/var/lib/inventory/inventory.db"},
		{"file:/tmp/x.db?cache=shared", "/tmp/x.db"},
		{":memory:", ""},
	}
	for _, tt := range tests {
		s := &Store{dialect: dialects[DriverSQLite], dsn: tt.dsn}
		assert.Equal(t, tt.want, s.Path(), tt.dsn)
	}

	pg := &Store{dialect: dialects[DriverPostgres], dsn: "postgres://localhost/inventory"}
	assert.Empty(t, pg.Path())
}

func TestLeaseLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	lease := inventory.Lease{MAC: "00:11:22:33:44:55", IP: "10.0.0.5", Hostname: "printer"}
	require.NoError(t, s.InsertLease(ctx, lease))

	err := s.InsertLease(ctx, lease)
	require.ErrorIs(t, err, inventory.ErrDuplicateKey)
	var sqliteErr sqlite3.Error
	assert.True(t, errors.As(err, &sqliteErr), "driver error should stay in the chain")

	n, err := s.UpdateLease(ctx, inventory.Lease{MAC: lease.MAC, IP: "10.0.0.6", Hostname: "printer2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.FindLease(ctx, lease.MAC)
	require.NoError(t, err)
	assert.Equal(t, inventory.Lease{MAC: lease.MAC, IP: "10.0.0.6", Hostname: "printer2"}, got)

	n, err = s.UpdateLease(ctx, inventory.Lease{MAC: "ff:ff:ff:ff:ff:ff", IP: "10.0.0.9"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = s.DeleteLease(ctx, lease.MAC)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.DeleteLease(ctx, lease.MAC)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = s.FindLease(ctx, lease.MAC)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestMappingLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	m := inventory.Mapping{MAC: "aa", IP: "10.0.0.2", Hostname: "nas", Enabled: true, Comment: "rack 2"}
	require.NoError(t, s.InsertMapping(ctx, m))
	require.ErrorIs(t, s.InsertMapping(ctx, m), inventory.ErrDuplicateKey)

	n, err := s.UpdateMapping(ctx, inventory.Mapping{MAC: "aa", IP: "10.0.0.3", Hostname: "nas", Enabled: false})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	mappings, err := s.ListMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, inventory.Mapping{MAC: "aa", IP: "10.0.0.3", Hostname: "nas", Enabled: false}, mappings[0])

	n, err = s.UpdateMapping(ctx, inventory.Mapping{MAC: "bb", IP: "10.0.0.4", Hostname: "x"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = s.DeleteMapping(ctx, "aa")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.DeleteMapping(ctx, "aa")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestGroupMembers(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	member := inventory.GroupMember{Group: "web", Hostname: "nas"}
	require.NoError(t, s.InsertGroupMember(ctx, member))
	// no uniqueness on memberships
	require.NoError(t, s.InsertGroupMember(ctx, member))

	members, err := s.ListGroupMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	n, err := s.DeleteGroupMember(ctx, member)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.DeleteGroupMember(ctx, member)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestHosts(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	// leased and mapped
	require.NoError(t, s.InsertMapping(ctx, inventory.Mapping{MAC: "01", IP: "10.0.0.1", Hostname: "alpha", Enabled: true}))
	require.NoError(t, s.InsertLease(ctx, inventory.Lease{MAC: "01", IP: "10.0.0.1", Hostname: "alpha"}))
	// mapped only
	require.NoError(t, s.InsertMapping(ctx, inventory.Mapping{MAC: "02", IP: "10.0.0.2", Hostname: "beta", Enabled: true}))
	// leased only, hostname matching a group member
	require.NoError(t, s.InsertLease(ctx, inventory.Lease{MAC: "03", IP: "10.0.0.99", Hostname: "gamma"}))

	require.NoError(t, s.InsertGroupMember(ctx, inventory.GroupMember{Group: "web", Hostname: "alpha"}))
	require.NoError(t, s.InsertGroupMember(ctx, inventory.GroupMember{Group: "db", Hostname: "alpha"}))
	require.NoError(t, s.InsertGroupMember(ctx, inventory.GroupMember{Group: "web", Hostname: "gamma"}))

	hosts, err := s.Hosts(ctx)
	require.NoError(t, err)
	require.Len(t, hosts, 3)

	alpha := hosts[0]
	assert.Equal(t, "01", alpha.MAC)
	assert.Equal(t, "10.0.0.1", alpha.LeaseIP)
	assert.Equal(t, "alpha", alpha.LeaseHostname)
	assert.Equal(t, "10.0.0.1", alpha.MappingIP)
	assert.Equal(t, "alpha", alpha.MappingHostname)
	assert.Equal(t, []string{"db", "web"}, alpha.GroupSet().Sorted())
	assert.True(t, alpha.Conformant())

	beta := hosts[1]
	assert.Equal(t, "02", beta.MAC)
	assert.Empty(t, beta.LeaseIP)
	assert.Empty(t, beta.LeaseHostname)
	assert.Equal(t, "10.0.0.2", beta.MappingIP)
	assert.Empty(t, beta.Groups)

	gamma := hosts[2]
	assert.Equal(t, "03", gamma.MAC)
	assert.Equal(t, "10.0.0.99", gamma.LeaseIP)
	assert.Empty(t, gamma.MappingIP)
	assert.Empty(t, gamma.Groups, "groups attach through the mapping hostname only")
}

func TestHostsEmpty(t *testing.T) {
	hosts, err := openTestStore(t).Hosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.InsertLease(ctx, inventory.Lease{MAC: "01", IP: "10.0.0.1"}))
	require.NoError(t, s.InsertMapping(ctx, inventory.Mapping{MAC: "01", IP: "10.0.0.1", Hostname: "a", Enabled: true}))
	require.NoError(t, s.InsertGroupMember(ctx, inventory.GroupMember{Group: "web", Hostname: "a"}))
	require.NoError(t, s.InsertGroupMember(ctx, inventory.GroupMember{Group: "web", Hostname: "b"}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"leases": 1, "mappings": 1, "group_members": 2, "groups": 1}, stats)
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	err := s.InsertLease(context.Background(), inventory.Lease{MAC: "01", IP: "10.0.0.1"})
	assert.ErrorIs(t, err, inventory.ErrStoreUnavailable)

	_, err = s.Hosts(context.Background())
	assert.ErrorIs(t, err, inventory.ErrStoreUnavailable)
}

func TestRebind(t *testing.T) {
	q := `UPDATE leases SET ip = ?, hostname = ? WHERE mac = ?`

	assert.Equal(t, q, dialects[DriverSQLite].rebind(q))
	assert.Equal(t, `UPDATE leases SET ip = $1, hostname = $2 WHERE mac = $3`, dialects[DriverPostgres].rebind(q))
}

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"", "sqlite", "sqlite3"} {
		d, err := dialectFor(name)
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, d.driver)
	}
	for _, name := range []string{"postgres", "postgresql", "pgx"} {
		d, err := dialectFor(name)
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, d.driver)
	}
}

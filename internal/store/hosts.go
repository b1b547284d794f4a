package store

import (
	"context"
	"database/sql"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

// Hosts returns the reconciled view of leases, mappings and group
// memberships, one row per MAC address ordered by MAC.
func (s *Store) Hosts(ctx context.Context) ([]inventory.Host, error) {
	rows, err := s.query(ctx, s.dialect.hostsQuery())
	if err != nil {
		return nil, classify("query hosts", err)
	}
	defer rows.Close()

	var hosts []inventory.Host
	for rows.Next() {
		var leaseIP, leaseHostname, mappingIP, mappingHostname, groups sql.NullString
		var h inventory.Host
		if err := rows.Scan(&h.MAC, &leaseIP, &leaseHostname, &mappingIP, &mappingHostname, &groups); err != nil {
			return nil, classify("scan host", err)
		}
		h.LeaseIP = nullString(leaseIP)
		h.LeaseHostname = nullString(leaseHostname)
		h.MappingIP = nullString(mappingIP)
		h.MappingHostname = nullString(mappingHostname)
		h.Groups = nullString(groups)
		hosts = append(hosts, h)
	}
	return hosts, classify("query hosts", rows.Err())
}

package store

import (
	"context"
	"fmt"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

// Lease operations

func (s *Store) InsertLease(ctx context.Context, l inventory.Lease) error {
	_, err := s.exec(ctx, `INSERT INTO leases (mac, ip, hostname) VALUES (?, ?, ?)`,
		l.MAC, l.IP, l.Hostname)
	return classify("insert lease "+l.MAC, err)
}

func (s *Store) UpdateLease(ctx context.Context, l inventory.Lease) (int64, error) {
	return s.affected(ctx, "update lease "+l.MAC,
		`UPDATE leases SET ip = ?, hostname = ? WHERE mac = ?`,
		l.IP, l.Hostname, l.MAC)
}

func (s *Store) DeleteLease(ctx context.Context, mac string) (int64, error) {
	return s.affected(ctx, "delete lease "+mac, `DELETE FROM leases WHERE mac = ?`, mac)
}

func (s *Store) FindLease(ctx context.Context, mac string) (inventory.Lease, error) {
	var l inventory.Lease
	err := s.queryRow(ctx, `SELECT mac, ip, hostname FROM leases WHERE mac = ?`, mac).
		Scan(&l.MAC, &l.IP, &l.Hostname)
	if isNoRows(err) {
		return inventory.Lease{}, fmt.Errorf("%w: no lease for MAC address %s", inventory.ErrNotFound, mac)
	}
	if err != nil {
		return inventory.Lease{}, classify("find lease "+mac, err)
	}
	return l, nil
}

func (s *Store) ListLeases(ctx context.Context) ([]inventory.Lease, error) {
	rows, err := s.query(ctx, `SELECT mac, ip, hostname FROM leases ORDER BY mac`)
	if err != nil {
		return nil, classify("list leases", err)
	}
	defer rows.Close()

	var leases []inventory.Lease
	for rows.Next() {
		var l inventory.Lease
		if err := rows.Scan(&l.MAC, &l.IP, &l.Hostname); err != nil {
			return nil, classify("scan lease", err)
		}
		leases = append(leases, l)
	}
	return leases, classify("list leases", rows.Err())
}

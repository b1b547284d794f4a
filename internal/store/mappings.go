package store

import (
	"context"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

// Static mapping operations

func (s *Store) InsertMapping(ctx context.Context, m inventory.Mapping) error {
	_, err := s.exec(ctx, `
		INSERT INTO mappings (mac, ip, hostname, enabled, comment)
		VALUES (?, ?, ?, ?, ?)`,
		m.MAC, m.IP, m.Hostname, m.Enabled, m.Comment)
	return classify("insert mapping "+m.MAC, err)
}

func (s *Store) UpdateMapping(ctx context.Context, m inventory.Mapping) (int64, error) {
	return s.affected(ctx, "update mapping "+m.MAC, `
		UPDATE mappings SET ip = ?, hostname = ?, enabled = ?, comment = ?
		WHERE mac = ?`,
		m.IP, m.Hostname, m.Enabled, m.Comment, m.MAC)
}

func (s *Store) DeleteMapping(ctx context.Context, mac string) (int64, error) {
	return s.affected(ctx, "delete mapping "+mac, `DELETE FROM mappings WHERE mac = ?`, mac)
}

func (s *Store) ListMappings(ctx context.Context) ([]inventory.Mapping, error) {
	rows, err := s.query(ctx, `SELECT mac, ip, hostname, enabled, comment FROM mappings ORDER BY mac`)
	if err != nil {
		return nil, classify("list mappings", err)
	}
	defer rows.Close()

	var mappings []inventory.Mapping
	for rows.Next() {
		var m inventory.Mapping
		if err := rows.Scan(&m.MAC, &m.IP, &m.Hostname, &m.Enabled, &m.Comment); err != nil {
			return nil, classify("scan mapping", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, classify("list mappings", rows.Err())
}

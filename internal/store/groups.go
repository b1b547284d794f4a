package store

import (
	"context"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

// Group membership operations

func (s *Store) InsertGroupMember(ctx context.Context, g inventory.GroupMember) error {
	_, err := s.exec(ctx, `INSERT INTO group_members ("group", hostname) VALUES (?, ?)`,
		g.Group, g.Hostname)
	return classify("insert group member "+g.Group+"/"+g.Hostname, err)
}

func (s *Store) DeleteGroupMember(ctx context.Context, g inventory.GroupMember) (int64, error) {
	return s.affected(ctx, "delete group member "+g.Group+"/"+g.Hostname,
		`DELETE FROM group_members WHERE "group" = ? AND hostname = ?`,
		g.Group, g.Hostname)
}

func (s *Store) ListGroupMembers(ctx context.Context) ([]inventory.GroupMember, error) {
	rows, err := s.query(ctx, `SELECT "group", hostname FROM group_members ORDER BY "group", hostname`)
	if err != nil {
		return nil, classify("list group members", err)
	}
	defer rows.Close()

	var members []inventory.GroupMember
	for rows.Next() {
		var g inventory.GroupMember
		if err := rows.Scan(&g.Group, &g.Hostname); err != nil {
			return nil, classify("scan group member", err)
		}
		members = append(members, g)
	}
	return members, classify("list group members", rows.Err())
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

type Config struct {
	Driver string
	DSN    string
}

// Store persists leases, static mappings and group memberships. It holds a
// single connection; callers are expected to be the only writer.
type Store struct {
	db      *sql.DB
	dialect dialect
	dsn     string
}

func Open(cfg Config) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", inventory.ErrStoreUnavailable, d.driver, err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: apply schema: %w", inventory.ErrStoreUnavailable, err)
		}
	}

	return &Store{db: db, dialect: d, dsn: cfg.DSN}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", inventory.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Driver() string {
	return s.dialect.driver
}

// Path returns the database file for file based drivers, "" otherwise.
func (s *Store) Path() string {
	if !s.dialect.fileBased {
		return ""
	}
	path := strings.TrimPrefix(s.dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == ":memory:" {
		return ""
	}
	return path
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// affected runs a write and returns the number of rows it touched.
func (s *Store) affected(ctx context.Context, what string, query string, args ...any) (int64, error) {
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return 0, classify(what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(what, err)
	}
	return n, nil
}

// classify maps driver errors onto the inventory error kinds. The driver
// error stays in the chain.
func classify(what string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: %w", inventory.ErrDuplicateKey, what, err)
	}
	return fmt.Errorf("%w: %s: %w", inventory.ErrStoreUnavailable, what, err)
}

// Stats

func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int)

	tables := []struct{ key, query string }{
		{"leases", `SELECT COUNT(*) FROM leases`},
		{"mappings", `SELECT COUNT(*) FROM mappings`},
		{"group_members", `SELECT COUNT(*) FROM group_members`},
		{"groups", `SELECT COUNT(DISTINCT "group") FROM group_members`},
	}
	for _, t := range tables {
		var n int
		if err := s.queryRow(ctx, t.query).Scan(&n); err != nil {
			return nil, classify("stats "+t.key, err)
		}
		stats[t.key] = n
	}

	return stats, nil
}

func nullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

type dialect struct {
	driver    string
	schema    []string
	groupAgg  string
	numbered  bool
	fileBased bool
}

var dialects = map[string]dialect{
	DriverSQLite: {
		driver:    DriverSQLite,
		schema:    sqliteSchema,
		groupAgg:  `GROUP_CONCAT(group_members."group")`,
		fileBased: true,
	},
	DriverPostgres: {
		driver:   DriverPostgres,
		schema:   postgresSchema,
		groupAgg: `STRING_AGG(group_members."group", ',')`,
		numbered: true,
	},
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "", "sqlite", DriverSQLite:
		return dialects[DriverSQLite], nil
	case "postgres", "postgresql", DriverPostgres:
		return dialects[DriverPostgres], nil
	}
	return dialect{}, fmt.Errorf("store: unsupported driver %q", driver)
}

// rebind rewrites ? placeholders to $1..$n for drivers that need numbered
// parameters.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (d dialect) hostsQuery() string {
	return fmt.Sprintf(hostsQuery, d.groupAgg)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

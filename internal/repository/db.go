package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var schemas = map[string]string{
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS users (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			name    TEXT,
			email   TEXT NOT NULL UNIQUE,
			password TEXT,
			phone   TEXT,
			address TEXT,
			city    TEXT,
			zip     TEXT
		)`,
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS users (
			id      BIGSERIAL PRIMARY KEY,
			name    TEXT,
			email   TEXT NOT NULL UNIQUE,
			password TEXT,
			phone   TEXT,
			address TEXT,
			city    TEXT,
			zip     TEXT
		)`,
}

// Open connects to the users store and makes sure the table exists.
// SQLite is held to a single connection so every handler shares one handle
// and an in-memory database is not split across pool connections.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}
	return db, nil
}

// isUniqueViolation reports whether err is the store refusing a duplicate
// value in a UNIQUE column.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// The low byte is the primary result code whether or not extended
	// codes are enabled on the connection.
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}

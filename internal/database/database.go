package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// registers the "pgx" driver
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const uniqueViolationCode = "23505"

const (
	sqliteUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			gender TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			country TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
		)
	`
	postgresUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			country TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
)

// Open connects to the store behind driver/dsn and verifies it answers a ping.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// sqlite allows a single writer; queue writers in the pool instead of
	// surfacing "database is locked".
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// InitSchema creates the users table if it does not exist yet.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	ddl, err := usersTableDDL(db.DriverName())
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func usersTableDDL(driver string) (string, error) {
	switch driver {
	case "sqlite3":
		return sqliteUsersTable, nil
	case "pgx", "postgres":
		return postgresUsersTable, nil
	default:
		return "", fmt.Errorf("no schema for driver %q", driver)
	}
}

// IsUniqueViolation reports whether err was raised by a UNIQUE constraint,
// whichever of the supported drivers produced it.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// Package state persists the selected modes and the display history.
package state

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/bibleclock/internal/config"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS settings (
	name VARCHAR(64) NOT NULL PRIMARY KEY,
	value VARCHAR(255) NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS display_history (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	reference VARCHAR(64) NOT NULL,
	label VARCHAR(255) NOT NULL,
	mode VARCHAR(16) NOT NULL,
	version VARCHAR(32) NOT NULL,
	placeholder BOOLEAN NOT NULL,
	fingerprint VARCHAR(64) NOT NULL,
	displayed_at TIMESTAMP NOT NULL
)`,
}

// Open opens the state database for the configured driver. Nothing is sent
// to the server until the first query.
func Open(cfg config.StateConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		db, err := sqlx.Open(DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sqlx.Open(%s) > %w", DriverSQLite, err)
		}
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverMySQL:
		mysqlCfg, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("mysql.ParseDSN() > %w", err)
		}
		mysqlCfg.ParseTime = true
		db, err := sqlx.Open(DriverMySQL, mysqlCfg.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("sqlx.Open(%s) > %w", DriverMySQL, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported state driver %q", cfg.Driver)
	}
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db.ExecContext(create table) > %w", err)
		}
	}
	return nil
}

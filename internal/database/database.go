// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/logging"
)

// Supported drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

const defaultQueryTimeout = 5 * time.Second

// DB wraps the catalog connection and provides data access methods
type DB struct {
	conn         *sql.DB
	cfg          *config.DatabaseConfig
	driver       string
	queryTimeout time.Duration
}

// New opens the configured database and bootstraps the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, errors.New("database config is required")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverDuckDB
	}

	if !isMemoryPath(cfg.Path) {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr, err := connectionString(driver, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	db := &DB{
		conn:         conn,
		cfg:          cfg,
		driver:       driver,
		queryTimeout: timeout,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", driver).
		Str("path", cfg.Path).
		Dur("query_timeout", timeout).
		Msg("Database ready")

	return db, nil
}

// initialize verifies the connection and creates missing tables and indexes.
func (db *DB) initialize() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}
	if err := db.createTables(ctx); err != nil {
		return err
	}
	return db.createIndexes(ctx)
}

// Conn returns the underlying SQL connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns the name of the SQL driver in use.
func (db *DB) Driver() string {
	return db.driver
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

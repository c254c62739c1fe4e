// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
database_connection.go - Connection Strings and Pool Configuration

DuckDB:
  - access_mode=read_write, threads and max_memory from config
  - extension autoload disabled so startup never reaches the network
  - pool sized by CPU count

SQLite (modernc.org/sqlite, pure Go):
  - busy_timeout so writers wait instead of failing with SQLITE_BUSY
  - WAL journal mode for concurrent readers
  - single connection, which also keeps ":memory:" databases shared
    across every query in the process
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/tomtom215/roomies/internal/config"
)

// connectionString builds the driver-specific DSN.
func connectionString(driver string, cfg *config.DatabaseConfig) (string, error) {
	switch driver {
	case DriverDuckDB:
		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		maxMemory := cfg.MaxMemory
		if maxMemory == "" {
			maxMemory = "1GB"
		}
		return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
			cfg.Path, threads, maxMemory), nil

	case DriverSQLite:
		// Each pragma must be prefixed with _pragma= for modernc.org/sqlite.
		return cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", nil

	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	if db.driver == DriverSQLite {
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
		db.conn.SetConnMaxIdleTime(0)
		return
	}

	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

func isMemoryPath(path string) bool {
	return path == "" || path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

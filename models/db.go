package models

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	memDB  *sql.DB      // In-memory cache for fast reads
	diskDB *sql.DB      // Persistent storage; nil when running memory-only
	dbMu   sync.RWMutex // Protect concurrent access during writes
)

// InitDB opens the listing store. Writes go to the DuckDB file at path and are
// mirrored into an in-memory DuckDB that serves reads. An empty path runs
// memory-only.
func InitDB(path string) error {
	var err error

	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return serr.Wrap(err, "failed to create database directory")
			}
		}
		diskDB, err = sql.Open("duckdb", path)
		if err != nil {
			return serr.Wrap(err, "failed to open disk database")
		}
		if err := migrateDB(diskDB); err != nil {
			return serr.Wrap(err, "disk migration failed")
		}
	}

	// DuckDB's go driver uses empty string for in-memory databases
	memDB, err = sql.Open("duckdb", "")
	if err != nil {
		return serr.Wrap(err, "failed to open memory database")
	}
	if err := migrateDB(memDB); err != nil {
		return serr.Wrap(err, "memory migration failed")
	}

	if err := syncDiskToMemory(); err != nil {
		return serr.Wrap(err, "failed to sync data to memory")
	}
	return nil
}

// InitTestDB opens a fresh store at path, discarding any previous file.
func InitTestDB(path string) error {
	if path != "" {
		_ = os.Remove(path)
		_ = os.Remove(path + ".wal")
	}
	return InitDB(path)
}

// CloseDB closes both database connections
func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if memDB != nil {
		memDB.Close()
		memDB = nil
	}
	if diskDB != nil {
		diskDB.Close()
		diskDB = nil
	}
}

// syncDiskToMemory loads persisted listings into the memory cache
func syncDiskToMemory() error {
	if diskDB == nil {
		return nil
	}

	rows, err := diskDB.Query(`SELECT ` + listingColumns + ` FROM listings`)
	if err != nil {
		return serr.Wrap(err, "failed to read listings from disk")
	}
	defer rows.Close()

	stmt, err := memDB.Prepare(`INSERT OR IGNORE INTO listings (` + listingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return serr.Wrap(err, "failed to prepare cache insert")
	}
	defer stmt.Close()

	count := 0
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(l.args()...); err != nil {
			logger.LogErr(err, "failed to insert listing into memory", "guid", l.GUID)
			continue
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return serr.Wrap(err, "error iterating disk listings")
	}

	logger.Info("Synced disk listings to memory cache", "count", count)
	return nil
}

// WriteThrough writes to both databases, disk first for durability
func WriteThrough(query string, args ...any) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if memDB == nil {
		return serr.New("database not initialized")
	}

	if diskDB != nil {
		if _, err := diskDB.Exec(query, args...); err != nil {
			return serr.Wrap(err, "failed to write to disk")
		}
	}

	if _, err := memDB.Exec(query, args...); err != nil {
		if diskDB == nil {
			return serr.Wrap(err, "failed to write to memory")
		}
		// Disk write succeeded; the next start reloads the cache
		logger.LogErr(err, "failed to update memory cache")
	}
	return nil
}

// ReadFromCache performs fast reads from memory
func ReadFromCache(query string, args ...any) (*sql.Rows, error) {
	dbMu.RLock()
	defer dbMu.RUnlock()

	if memDB == nil {
		return nil, serr.New("database not initialized")
	}
	return memDB.Query(query, args...)
}

package models

import (
	"database/sql"

	"github.com/rohanthewiz/serr"
)

// CreateListingsTableSQL is the DDL for the listings table. Amenities are a
// JSON array stored as text.
const CreateListingsTableSQL = `
CREATE TABLE IF NOT EXISTS listings (
    guid          VARCHAR(40) PRIMARY KEY,
    title         VARCHAR NOT NULL,
    city          VARCHAR,
    price         INTEGER NOT NULL,
    property_type VARCHAR,
    room_type     VARCHAR,
    amenities     VARCHAR,
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// migrateDB runs all migrations on a single database
func migrateDB(db *sql.DB) error {
	if _, err := db.Exec(CreateListingsTableSQL); err != nil {
		return serr.Wrap(err, "failed to create listings table")
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price)",
		"CREATE INDEX IF NOT EXISTS idx_listings_property_type ON listings(property_type)",
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return serr.Wrap(err, "failed to create index")
		}
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS competitors (
    ordinal         INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    latitude        REAL NOT NULL,
    longitude       REAL NOT NULL,
    category        TEXT NOT NULL,
    price_tier      TEXT CHECK(price_tier IN ('$','$$','$$$','$$$$') OR price_tier IS NULL),
    cuisine_tag     TEXT,
    rating          REAL CHECK(rating BETWEEN 0 AND 5 OR rating IS NULL),
    review_count    INTEGER CHECK(review_count >= 0 OR review_count IS NULL),
    on_site         INTEGER NOT NULL DEFAULT 0 CHECK(on_site IN (0,1)),
    hours           TEXT,
    note            TEXT,
    google_maps_url TEXT,
    website         TEXT,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_competitors_category ON competitors(category);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Package storage persists derived data between runs: geocoding results
// and the fingerprints of PDFs that thumbnails were rendered from.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache wraps a SQLite database connection.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a SQLite cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Geocoder answers keyed by the "City, Country" query
		CREATE TABLE IF NOT EXISTS geocodes (
			query TEXT PRIMARY KEY,
			found INTEGER NOT NULL,
			lat REAL,
			lng REAL,
			fetched_at INTEGER NOT NULL
		);

		-- Thumbnails keyed by derived filename
		CREATE TABLE IF NOT EXISTS thumbnails (
			name TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			height INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Geocode is a cached geocoder answer. Found is false for a query the
// geocoder had no match for.
type Geocode struct {
	Query     string
	Found     bool
	Lat       float64
	Lng       float64
	FetchedAt int64 // Unix timestamp
}

// PutGeocode saves or replaces a geocoder answer.
func (c *Cache) PutGeocode(g Geocode) error {
	if g.FetchedAt == 0 {
		g.FetchedAt = time.Now().Unix()
	}
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO geocodes (query, found, lat, lng, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, g.Query, g.Found, g.Lat, g.Lng, g.FetchedAt)
	return err
}

// GetGeocode retrieves a cached answer. Returns nil if the query was never
// cached.
func (c *Cache) GetGeocode(query string) (*Geocode, error) {
	var g Geocode
	var lat, lng sql.NullFloat64
	err := c.db.QueryRow(`
		SELECT query, found, lat, lng, fetched_at
		FROM geocodes
		WHERE query = ?
	`, query).Scan(&g.Query, &g.Found, &lat, &lng, &g.FetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	g.Lat, g.Lng = lat.Float64, lng.Float64
	return &g, nil
}

// Thumbnail records which PDF content and height a thumbnail was made from.
type Thumbnail struct {
	Name        string
	Fingerprint string
	Height      int
	CreatedAt   int64 // Unix timestamp
}

// PutThumbnail saves or replaces a thumbnail record.
func (c *Cache) PutThumbnail(t Thumbnail) error {
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO thumbnails (name, fingerprint, height, created_at)
		VALUES (?, ?, ?, ?)
	`, t.Name, t.Fingerprint, t.Height, t.CreatedAt)
	return err
}

// GetThumbnail retrieves a thumbnail record. Returns nil if none exists.
func (c *Cache) GetThumbnail(name string) (*Thumbnail, error) {
	var t Thumbnail
	err := c.db.QueryRow(`
		SELECT name, fingerprint, height, created_at
		FROM thumbnails
		WHERE name = ?
	`, name).Scan(&t.Name, &t.Fingerprint, &t.Height, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Counts returns the number of cached geocodes and thumbnail records.
func (c *Cache) Counts() (geocodes, thumbnails int, err error) {
	if err = c.db.QueryRow("SELECT COUNT(*) FROM geocodes").Scan(&geocodes); err != nil {
		return 0, 0, err
	}
	err = c.db.QueryRow("SELECT COUNT(*) FROM thumbnails").Scan(&thumbnails)
	return geocodes, thumbnails, err
}

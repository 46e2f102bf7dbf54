package database

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Schema is created on first run only; an existing file is never migrated.
const schema = `
	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		dates_away TEXT,
		message TEXT,
		ab_variant TEXT,
		created_at DATETIME NOT NULL
	)
`

// NewDBConnection opens the waitlist database file, creating it (and the
// leads table) if absent.
func NewDBConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; keeping one connection avoids
	// SQLITE_BUSY under concurrent inserts.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

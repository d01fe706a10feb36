// Package sqlite implements the SQLite key-value backend for the catalogue.
// This file holds the schema DDL.
package sqlite

// Schema DDL. A single table maps each storage key to its blob.
const (
	createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Connection pragmas applied on Attach.
const (
	pragmaBusyTimeout = `PRAGMA busy_timeout = 5000;`
	pragmaJournalWAL  = `PRAGMA journal_mode = WAL;`
)

// schemaDDL lists all statements executed on Attach, in order.
var schemaDDL = []string{
	pragmaBusyTimeout,
	pragmaJournalWAL,
	createKV,
}

// dbFileName is the database file created inside DataDir.
const dbFileName = "canvas.db"

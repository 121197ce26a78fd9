package store

import "database/sql"

// Migration is one schema migration step
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered migration list. Append only, with
// incrementing version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS verifications (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL,
    url TEXT,
    page_score INTEGER NOT NULL,
    content_hash TEXT NOT NULL,
    result TEXT NOT NULL,
    created_at TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_verifications_content_hash
    ON verifications(content_hash);

CREATE INDEX IF NOT EXISTS idx_verifications_created_at
    ON verifications(created_at);
`)
			return err
		},
	},
}

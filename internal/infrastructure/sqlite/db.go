// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

// Package sqlite provides a file-backed repository implementation.
// Identifiers are opaque; composing canonical resource URLs is the
// handlers' job.
package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenDB opens (or creates) the database at path and applies the schema.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS line_items (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			score_maximum REAL NOT NULL,
			resource_id TEXT NOT NULL DEFAULT '',
			resource_link_id TEXT NOT NULL DEFAULT '',
			tag TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_filters ON line_items(resource_id, resource_link_id, tag);`,
		`CREATE TABLE IF NOT EXISTS scores (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			line_item_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			FOREIGN KEY(line_item_id) REFERENCES line_items(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_line_item ON scores(line_item_id, seq);`,
		`CREATE TABLE IF NOT EXISTS results (
			line_item_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			PRIMARY KEY(line_item_id, user_id),
			FOREIGN KEY(line_item_id) REFERENCES line_items(id) ON DELETE CASCADE
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

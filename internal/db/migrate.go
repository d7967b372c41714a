package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The session is a single row (id = 1); timers and completed steps hang off
// it and are removed with it.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_state (
		id                 INTEGER PRIMARY KEY CHECK(id = 1),
		active_recipe_id   TEXT NOT NULL DEFAULT '',
		step_index         INTEGER NOT NULL DEFAULT 0 CHECK(step_index >= 0),
		scale_factor       REAL NOT NULL DEFAULT 1.0
		                   CHECK(scale_factor >= 0.25 AND scale_factor <= 4.0),
		is_paused          INTEGER NOT NULL DEFAULT 0,
		keep_screen_on     INTEGER NOT NULL DEFAULT 1,
		voice_enabled      INTEGER NOT NULL DEFAULT 1,
		voice_speed        REAL NOT NULL DEFAULT 1.0,
		auto_advance       INTEGER NOT NULL DEFAULT 0,
		haptics            INTEGER NOT NULL DEFAULT 1,
		timer_sound        TEXT NOT NULL DEFAULT 'default',
		last_action_at     TEXT,
		session_started_at TEXT,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS session_completed_steps (
		session_id INTEGER NOT NULL REFERENCES session_state(id) ON DELETE CASCADE,
		step       INTEGER NOT NULL CHECK(step >= 0),
		PRIMARY KEY (session_id, step)
	)`,

	`CREATE TABLE IF NOT EXISTS session_timers (
		id              TEXT PRIMARY KEY,
		session_id      INTEGER NOT NULL REFERENCES session_state(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL,
		label           TEXT NOT NULL,
		duration_ns     INTEGER NOT NULL CHECK(duration_ns >= 0),
		remaining_ns    INTEGER NOT NULL CHECK(remaining_ns >= 0),
		associated_step INTEGER,
		started_at      TEXT,
		paused_at       TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_timers_position ON session_timers(session_id, position)`,
}

// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the workouts table and its recency index.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL DEFAULT 0 CHECK (duration_seconds >= 0),
		occurred_at DATETIME NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_occurred ON workouts(occurred_at DESC);
	CREATE INDEX IF NOT EXISTS idx_workouts_category_occurred ON workouts(category, occurred_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}

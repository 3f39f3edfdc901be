package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add study log lookup indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_study_log_session ON study_log(session_id);
			CREATE INDEX IF NOT EXISTS idx_study_log_english ON study_log(english);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_study_log_session;
			DROP INDEX IF EXISTS idx_study_log_english;
		`,
	},
	{
		Version: 2,
		Name:    "Add study_sessions table",
		Up: `
			CREATE TABLE IF NOT EXISTS study_sessions (
				session_id TEXT PRIMARY KEY,
				server_url TEXT NOT NULL,
				started_at DATETIME NOT NULL
			);

			-- Backfill sessions recorded before the table existed
			INSERT OR IGNORE INTO study_sessions (session_id, server_url, started_at)
			SELECT session_id, '', MIN(viewed_at) FROM study_log GROUP BY session_id;
		`,
		Down: `
			DROP TABLE IF EXISTS study_sessions;
		`,
	},
	{
		Version: 3,
		Name:    "Add composite index for per-session ordering",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_study_log_session_viewed ON study_log(session_id, viewed_at DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_study_log_session_viewed;
		`,
	},
}

// InitSchema creates the base tables
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS study_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		viewed_at DATETIME NOT NULL,
		action TEXT NOT NULL,
		position INTEGER NOT NULL,
		total INTEGER NOT NULL,
		english TEXT NOT NULL,
		arabic TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_study_log_viewed_at ON study_log(viewed_at DESC);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := apply(db, migration); err != nil {
			return err
		}
	}

	return nil
}

// apply runs one migration and records it in a single transaction
func apply(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(migration.Up); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		migration.Version,
		migration.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	return tx.Commit()
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}

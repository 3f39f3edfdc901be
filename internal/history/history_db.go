package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/flashdeck/internal/config"
	"github.com/studiowebux/flashdeck/internal/migrations"
	"github.com/studiowebux/flashdeck/internal/types"
)

// Manager owns the study log database
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the study log at dbPath and migrates it
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// StartSession opens a new study session against serverURL
func (m *Manager) StartSession(serverURL string) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		ServerURL: serverURL,
		StartedAt: time.Now().UTC(),
		manager:   m,
	}

	_, err := m.db.Exec(
		"INSERT INTO study_sessions (session_id, server_url, started_at) VALUES (?, ?, ?)",
		s.ID, s.ServerURL, s.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start study session: %w", err)
	}

	return s, nil
}

func (m *Manager) record(sessionID, action string, card *types.CardSnapshot) error {
	query := `
		INSERT INTO study_log (session_id, viewed_at, action, position, total, english, arabic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		sessionID,
		time.Now().UTC(),
		action,
		card.Position,
		card.Total,
		card.English,
		card.Arabic,
	)
	if err != nil {
		return fmt.Errorf("failed to save study log entry: %w", err)
	}

	return nil
}

// Load returns the most recent entries across all sessions, newest first.
// limit <= 0 returns everything.
func (m *Manager) Load(limit int) ([]Entry, error) {
	query := `
		SELECT id, session_id, viewed_at, action, position, total, english, arabic
		FROM study_log
		ORDER BY viewed_at DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load study log: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// LoadSession returns the entries of one session in viewing order
func (m *Manager) LoadSession(sessionID string) ([]Entry, error) {
	query := `
		SELECT id, session_id, viewed_at, action, position, total, english, arabic
		FROM study_log
		WHERE session_id = ?
		ORDER BY viewed_at ASC, id ASC
	`

	rows, err := m.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Sessions summarises study sessions, newest first
func (m *Manager) Sessions(limit int) ([]SessionSummary, error) {
	query := `
		SELECT s.session_id, s.server_url, s.started_at, COUNT(l.id)
		FROM study_sessions s
		LEFT JOIN study_log l ON l.session_id = s.session_id
		GROUP BY s.session_id, s.server_url, s.started_at
		ORDER BY s.started_at DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.ServerURL, &s.StartedAt, &s.Cards); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// MostViewed returns the cards viewed most often, most viewed first
func (m *Manager) MostViewed(limit int) ([]CardCount, error) {
	query := `
		SELECT english, arabic, COUNT(*) AS views
		FROM study_log
		GROUP BY english, arabic
		ORDER BY views DESC, english ASC
		LIMIT ?
	`

	rows, err := m.db.Query(query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load card counts: %w", err)
	}
	defer rows.Close()

	var counts []CardCount
	for rows.Next() {
		var c CardCount
		if err := rows.Scan(&c.English, &c.Arabic, &c.Views); err != nil {
			return nil, fmt.Errorf("failed to scan card count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// Clear removes every entry and session
func (m *Manager) Clear() error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM study_log"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM study_sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return tx.Commit()
}

// GetCount returns the number of logged card views
func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM study_log").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry

	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.ViewedAt,
			&e.Action,
			&e.Position,
			&e.Total,
			&e.English,
			&e.Arabic,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan study log entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// normalizeLimit maps "no limit" onto SQLite's LIMIT -1
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

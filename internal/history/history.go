package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/studiowebux/flashdeck/internal/types"
)

// Entry is one card view in the study log
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	SessionID string    `json:"sessionId" yaml:"sessionId"`
	ViewedAt  time.Time `json:"viewedAt" yaml:"viewedAt"`
	Action    string    `json:"action" yaml:"action"`
	Position  int       `json:"position" yaml:"position"`
	Total     int       `json:"total" yaml:"total"`
	English   string    `json:"english" yaml:"english"`
	Arabic    string    `json:"arabic" yaml:"arabic"`
}

// SessionSummary describes one run of the client
type SessionSummary struct {
	ID        string    `json:"id" yaml:"id"`
	ServerURL string    `json:"serverUrl" yaml:"serverUrl"`
	StartedAt time.Time `json:"startedAt" yaml:"startedAt"`
	Cards     int       `json:"cards" yaml:"cards"`
}

// CardCount is a card with its number of views
type CardCount struct {
	English string `json:"english" yaml:"english"`
	Arabic  string `json:"arabic" yaml:"arabic"`
	Views   int    `json:"views" yaml:"views"`
}

// Session records card views for one client run
type Session struct {
	ID        string
	ServerURL string
	StartedAt time.Time
	manager   *Manager
}

// Record logs that card was loaded by action (next, previous, first, last, goto)
func (s *Session) Record(action string, card *types.CardSnapshot) error {
	if s == nil || card == nil {
		return nil
	}
	return s.manager.record(s.ID, action, card)
}

// WriteJSON writes entries as an indented JSON array
func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return nil
}

// FormatEntry renders one entry as a single line
func FormatEntry(e Entry) string {
	return fmt.Sprintf("%s  %-8s  %3d/%-3d  %s  %s",
		e.ViewedAt.Local().Format("2006-01-02 15:04:05"),
		e.Action,
		e.Position,
		e.Total,
		e.English,
		e.Arabic,
	)
}

// FormatEntries renders entries one per line
func FormatEntries(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(FormatEntry(e))
		b.WriteByte('\n')
	}
	return b.String()
}

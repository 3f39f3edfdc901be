package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/flashdeck/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "flashdeck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func card(position int, english, arabic string) *types.CardSnapshot {
	return &types.CardSnapshot{English: english, Arabic: arabic, Position: position, Total: 3}
}

func TestRecordAndLoadSession(t *testing.T) {
	m := newTestManager(t)

	session, err := m.StartSession("http://localhost:8000")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	require.NoError(t, session.Record("first", card(1, "to write", "كَتَبَ")))
	require.NoError(t, session.Record("next", card(2, "to read", "قَرَأَ")))

	entries, err := m.LoadSession(session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "first", entries[0].Action)
	assert.Equal(t, "to write", entries[0].English)
	assert.Equal(t, "next", entries[1].Action)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, 3, entries[1].Total)
	assert.WithinDuration(t, time.Now(), entries[1].ViewedAt, time.Minute)

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLoadNewestFirstWithLimit(t *testing.T) {
	m := newTestManager(t)
	session, err := m.StartSession("http://localhost:8000")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, session.Record("next", card(i, "word", "كلمة")))
	}

	entries, err := m.Load(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)

	all, err := m.Load(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionsAndMostViewed(t *testing.T) {
	m := newTestManager(t)

	first, err := m.StartSession("http://a")
	require.NoError(t, err)
	require.NoError(t, first.Record("first", card(1, "to write", "كَتَبَ")))
	require.NoError(t, first.Record("next", card(2, "to read", "قَرَأَ")))

	second, err := m.StartSession("http://b")
	require.NoError(t, err)
	require.NoError(t, second.Record("goto", card(2, "to read", "قَرَأَ")))

	sessions, err := m.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	byID := map[string]SessionSummary{}
	for _, s := range sessions {
		byID[s.ID] = s
	}
	assert.Equal(t, 2, byID[first.ID].Cards)
	assert.Equal(t, 1, byID[second.ID].Cards)
	assert.Equal(t, "http://b", byID[second.ID].ServerURL)

	counts, err := m.MostViewed(1)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, CardCount{English: "to read", Arabic: "قَرَأَ", Views: 2}, counts[0])
}

func TestClear(t *testing.T) {
	m := newTestManager(t)
	session, err := m.StartSession("http://a")
	require.NoError(t, err)
	require.NoError(t, session.Record("next", card(1, "word", "كلمة")))

	require.NoError(t, m.Clear())

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	sessions, err := m.Sessions(0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestNilSessionRecordIsNoop(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Record("next", card(1, "word", "كلمة")))
}

func TestWriteJSONAndFormat(t *testing.T) {
	entries := []Entry{{
		ID:       1,
		Action:   "goto",
		Position: 2,
		Total:    3,
		English:  "to read",
		Arabic:   "قَرَأَ",
		ViewedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))

	var decoded []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "to read", decoded[0].English)

	line := FormatEntry(entries[0])
	assert.Contains(t, line, "goto")
	assert.Contains(t, line, "2/3")
	assert.Contains(t, line, "قَرَأَ")

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

package tui

import (
	"errors"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/flashdeck/internal/deck"
	"github.com/studiowebux/flashdeck/internal/deckclient"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"github.com/studiowebux/flashdeck/internal/navigator"
	"github.com/studiowebux/flashdeck/internal/server"
	"github.com/studiowebux/flashdeck/internal/types"
	"github.com/studiowebux/flashdeck/internal/viewstate"
)

// testClipboard records clipboard writes instead of touching the system clipboard
type testClipboard struct {
	text string
	err  error
}

func (c *testClipboard) write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// CreateTestModel creates a Model talking to an in-process deck service
// serving cards
func CreateTestModel(t *testing.T, cards []types.CardSnapshot, opts ...navigator.Option) (*Model, *testClipboard) {
	t.Helper()

	srv := server.NewServer(deck.New(cards), "", nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	controller := viewstate.NewController(nil, nil, nil)
	client := deckclient.New(ts.URL, 0)

	m := New(Options{
		Controller: controller,
		Navigator:  navigator.New(client, controller, opts...),
		Keybinds:   keybinds.NewDefaultRegistry(),
		ServerURL:  ts.URL,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	clip := &testClipboard{}
	m.copyText = clip.write

	return m, clip
}

// runCmd executes cmd and feeds navigation completions back into the model.
// Timer based messages (spinner ticks, cursor blinks) are dropped.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, m, c)
		}
	case navigator.CardMsg:
		m.Update(msg)
	}
}

// press sends a key to the model and runs the resulting command, except for
// focus changes whose command only blinks the cursor
func press(t *testing.T, m *Model, key tea.KeyMsg) {
	t.Helper()
	before := m.mode

	_, cmd := m.Update(key)
	if m.mode != before {
		return
	}
	runCmd(t, m, cmd)
}

// typeText sends each rune of s as a key press
func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		press(t, m, runeKey(r))
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

var errClipboard = errors.New("no clipboard available")

package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/flashdeck/internal/deck"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"github.com/studiowebux/flashdeck/internal/navigator"
	"github.com/studiowebux/flashdeck/internal/types"
	"github.com/studiowebux/flashdeck/internal/viewstate"
)

func TestInitLoadsFirstCard(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())

	runCmd(t, m, m.Init())

	s := m.controller.Surface()
	assert.Equal(t, "to write", s.English)
	assert.Equal(t, "Card 1 of 3", s.Counter)
	assert.Equal(t, 3, s.GotoMax)
	assert.False(t, m.navigator.InFlight())
	assert.Contains(t, m.View(), "to write")
}

func TestArrowKeysNavigate(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, key(tea.KeyRight))
	assert.Equal(t, "Card 2 of 3", m.controller.Surface().Counter)

	press(t, m, key(tea.KeyEnd))
	assert.Equal(t, "Card 3 of 3", m.controller.Surface().Counter)

	press(t, m, key(tea.KeyLeft))
	assert.Equal(t, "Card 2 of 3", m.controller.Surface().Counter)

	press(t, m, key(tea.KeyHome))
	assert.Equal(t, "Card 1 of 3", m.controller.Surface().Counter)
}

func TestSpaceAndEnterFlipCard(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, key(tea.KeySpace))
	assert.True(t, m.controller.Surface().Flipped)
	view := m.View()
	assert.Contains(t, view, "كَتَبَ")
	assert.Contains(t, view, "kataba")

	press(t, m, key(tea.KeyEnter))
	assert.False(t, m.controller.Surface().Flipped)
}

func TestNavigationFacesFront(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, key(tea.KeySpace))
	press(t, m, key(tea.KeyRight))

	assert.False(t, m.controller.Surface().Flipped)
}

func TestGotoInput(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, runeKey(':'))
	require.Equal(t, ModeGoto, m.mode)

	typeText(t, m, "3")
	assert.Equal(t, "3", m.gotoInput.Value())

	press(t, m, key(tea.KeyEnter))
	s := m.controller.Surface()
	assert.Equal(t, "Card 3 of 3", s.Counter)
	assert.False(t, s.Flipped, "enter in the goto input must not flip")
	assert.Equal(t, ModeGoto, m.mode)

	// Space is typed into the input rather than flipping the card
	press(t, m, key(tea.KeySpace))
	assert.False(t, m.controller.Surface().Flipped)

	press(t, m, key(tea.KeyEsc))
	assert.Equal(t, ModeCard, m.mode)
	assert.False(t, m.gotoInput.Focused())
}

func TestGotoInvalidInputShowsBanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not a number", "abc", navigator.MsgInvalidInput},
		{"zero", "0", navigator.MsgInvalidInput},
		{"out of range", "20", "Invalid card number. Please enter a number between 1 and 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := CreateTestModel(t, deck.SampleCards())
			runCmd(t, m, m.Init())

			press(t, m, runeKey('g'))
			typeText(t, m, tt.input)
			press(t, m, key(tea.KeyEnter))

			s := m.controller.Surface()
			assert.True(t, s.Error.Visible)
			assert.Equal(t, tt.want, s.Error.Text)
			assert.Equal(t, "Card 1 of 3", s.Counter)
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestSuccessfulNavigationClearsBanner(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, runeKey('g'))
	typeText(t, m, "x")
	press(t, m, key(tea.KeyEnter))
	require.True(t, m.controller.Surface().Error.Visible)

	press(t, m, key(tea.KeyEsc))
	press(t, m, key(tea.KeyRight))

	assert.False(t, m.controller.Surface().Error.Visible)
}

func TestTenseKeysSwitchLists(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	card := deck.SampleCards()[0]

	press(t, m, runeKey('t'))
	s := m.controller.Surface()
	require.Len(t, s.Conjugations, len(card.Conjugations[types.TensePresent]))
	assert.Equal(t, card.Conjugations[types.TensePresent][0].Arabic, s.Conjugations[0].Arabic)
	assert.True(t, s.ConjugationTabs[1].Active)

	// Sentence tense is independent of the conjugation tense
	assert.True(t, s.SentenceTabs[0].Active)

	press(t, m, runeKey('s'))
	s = m.controller.Surface()
	assert.True(t, s.SentenceTabs[1].Active)
	assert.Equal(t, card.ExampleSentences[types.TensePresent][0].English, s.Sentences[0].English)
	assert.Contains(t, m.listView.View(), "The girl is writing a letter")
}

func TestEmptyDeckShowsPlaceholders(t *testing.T) {
	m, _ := CreateTestModel(t, nil)
	runCmd(t, m, m.Init())

	s := m.controller.Surface()
	assert.Equal(t, "No cards available", s.English)
	assert.Equal(t, "Card 0 of 0", s.Counter)
	assert.Equal(t, viewstate.ConjugationPlaceholder, s.ConjugationPlaceholder)
	assert.Equal(t, viewstate.SentencePlaceholder, s.SentencePlaceholder)
	assert.Contains(t, m.listView.View(), viewstate.ConjugationPlaceholder)
}

func TestCopyArabic(t *testing.T) {
	m, clip := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, runeKey('c'))
	assert.Equal(t, "كَتَبَ", clip.text)
	assert.Equal(t, "Copied كَتَبَ", m.statusMsg)

	clip.err = errClipboard
	press(t, m, runeKey('c'))
	assert.True(t, strings.HasPrefix(m.statusMsg, "Failed to copy"))
}

func TestHelpOverlay(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	press(t, m, runeKey('?'))
	require.Equal(t, ModeHelp, m.mode)
	view := m.View()
	assert.Contains(t, view, "Keyboard shortcuts")
	assert.Contains(t, view, "Next card")

	// Navigation keys do nothing while help is open
	press(t, m, key(tea.KeyRight))
	assert.Equal(t, "Card 1 of 3", m.controller.Surface().Counter)

	press(t, m, key(tea.KeyEsc))
	assert.Equal(t, ModeCard, m.mode)
}

func TestQuitKeys(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	press(t, m, runeKey('g'))
	_, cmd = m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())
	runCmd(t, m, m.Init())

	slow := m.navigator.Next()
	fast := m.navigator.Last()

	m.Update(fast())
	m.Update(slow())

	assert.Equal(t, "Card 3 of 3", m.controller.Surface().Counter)
}

func TestDisplayKeys(t *testing.T) {
	assert.Equal(t, "space", displayKeys(" "))
	assert.Equal(t, "space, enter", displayKeys(" , enter"))
	assert.Equal(t, "h, left, p", displayKeys("h, left, p"))
}

func TestSetStatusTruncatesByRune(t *testing.T) {
	m, _ := CreateTestModel(t, deck.SampleCards())

	m.setStatus(strings.Repeat("كَتَبَ ", 40))
	assert.True(t, utf8.ValidString(m.statusMsg))
	assert.Equal(t, StatusMaxLength, utf8.RuneCountInString(m.statusMsg))
	assert.True(t, strings.HasSuffix(m.statusMsg, "..."))

	short := strings.Repeat("ب", StatusMaxLength)
	m.setStatus(short)
	assert.Equal(t, short, m.statusMsg)
}

func TestModeContext(t *testing.T) {
	assert.Equal(t, keybinds.ContextCard, ModeCard.context())
	assert.Equal(t, keybinds.ContextGoto, ModeGoto.context())
	assert.Equal(t, keybinds.ContextHelp, ModeHelp.context())
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"go.uber.org/zap"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeGoto:
		return m.handleGotoKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleCardKeys(msg)
	}
}

// handleCardKeys handles keyboard input on the card view
func (m *Model) handleCardKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(m.mode.context(), msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionNextCard:
		return m.startRequest(m.navigator.Next())
	case keybinds.ActionPreviousCard:
		return m.startRequest(m.navigator.Previous())
	case keybinds.ActionFirstCard:
		return m.startRequest(m.navigator.First())
	case keybinds.ActionLastCard:
		return m.startRequest(m.navigator.Last())

	case keybinds.ActionFlipCard:
		m.controller.ToggleFlip()

	case keybinds.ActionNextConjugationTense:
		m.logRenderError(m.controller.NextConjugationTense())
		m.updateListView()
	case keybinds.ActionNextSentenceTense:
		m.logRenderError(m.controller.NextSentenceTense())
		m.updateListView()

	case keybinds.ActionScrollUp:
		m.listView.ScrollUp(1)
	case keybinds.ActionScrollDown:
		m.listView.ScrollDown(1)

	case keybinds.ActionCopyArabic:
		m.copyArabic()

	case keybinds.ActionFocusGoto:
		m.mode = ModeGoto
		return m.gotoInput.Focus()

	case keybinds.ActionToggleHelp:
		m.mode = ModeHelp
		m.helpView.GotoTop()
		m.updateHelpView()
	}

	return nil
}

// handleGotoKeys handles keyboard input while the goto input has focus.
// Keys without a binding are typed into the input, so flip is unavailable.
func (m *Model) handleGotoKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(m.mode.context(), msg.String())
	if !ok {
		var cmd tea.Cmd
		m.gotoInput, cmd = m.gotoInput.Update(msg)
		return cmd
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit
	case keybinds.ActionGotoSubmit:
		// Focus stays in the input so another number can be typed
		return m.startRequest(m.navigator.GoTo(m.gotoInput.Value()))
	case keybinds.ActionGotoCancel:
		m.gotoInput.Blur()
		m.mode = ModeCard
	}

	return nil
}

// handleHelpKeys handles keyboard input in the help overlay
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	action, ok := m.keybinds.Match(m.mode.context(), key)
	if ok {
		switch action {
		case keybinds.ActionQuitForce:
			return tea.Quit
		case keybinds.ActionCloseHelp:
			m.mode = ModeCard
			return nil
		}
	}

	// Scrolling reuses the card bindings
	if action, ok := m.keybinds.Match(keybinds.ContextCard, key); ok {
		switch action {
		case keybinds.ActionScrollUp:
			m.helpView.ScrollUp(1)
		case keybinds.ActionScrollDown:
			m.helpView.ScrollDown(1)
		}
	}

	return nil
}

// copyArabic copies the Arabic word of the current card to the clipboard
func (m *Model) copyArabic() {
	surface := m.controller.Surface()
	if surface.Arabic == "" {
		m.setStatus("Nothing to copy")
		return
	}

	if err := m.copyText(surface.Arabic); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.setStatus("Failed to copy: " + err.Error())
		return
	}
	m.setStatus("Copied " + surface.Arabic)
}

// logRenderError sends render problems to the diagnostic log. The controller
// has already rendered the rows it could.
func (m *Model) logRenderError(err error) {
	if err != nil {
		m.logger.Debug("render incomplete", zap.Error(err))
	}
}

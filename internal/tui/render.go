package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"github.com/studiowebux/flashdeck/internal/viewstate"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleActiveTab = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleTab = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorGray)

	styleError = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleArabic = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Align(lipgloss.Center, lipgloss.Center)
)

// renderMain renders the card view
func (m *Model) renderMain() string {
	surface := m.controller.Surface()

	sections := []string{
		m.renderHeader(surface),
		m.renderCard(surface),
	}
	if surface.Error.Visible {
		sections = append(sections, styleError.Render("⚠ "+surface.Error.Text))
	}
	sections = append(sections,
		m.listView.View(),
		m.renderGoto(surface),
		m.renderStatusBar(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the card counter
func (m *Model) renderHeader(surface viewstate.Surface) string {
	title := styleTitle.Render("flashdeck")
	if m.serverURL != "" {
		title += styleSubtle.Render("  " + m.serverURL)
	}

	counter := styleSubtle.Render(surface.Counter)
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(counter)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + counter
}

// renderCard renders the visible face of the card
func (m *Model) renderCard(surface viewstate.Surface) string {
	width := m.cardWidth()

	var face string
	if surface.Flipped {
		lines := []string{styleArabic.Render(surface.Arabic)}
		if surface.Form.Visible {
			lines = append(lines, styleSubtle.Render(surface.Form.Text))
		}
		if surface.Pronunciation.Visible {
			lines = append(lines, styleSubtle.Italic(true).Render(surface.Pronunciation.Text))
		}
		face = lipgloss.JoinVertical(lipgloss.Center, lines...)
	} else {
		face = lipgloss.NewStyle().Bold(true).Render(surface.English)
	}

	border := colorCyan
	if surface.Flipped {
		border = colorGreen
	}

	return styleCard.
		BorderForeground(border).
		Width(width).
		Height(CardFaceHeight).
		Render(face)
}

// cardWidth fits the card between CardMinWidth and CardMaxWidth
func (m *Model) cardWidth() int {
	width := m.width - CardBorderWidth
	if width > CardMaxWidth {
		width = CardMaxWidth
	}
	if width < CardMinWidth {
		width = CardMinWidth
	}
	return width
}

// renderTabs renders a tense tab-group
func renderTabs(title string, tabs []viewstate.Tab) string {
	parts := []string{styleTitle.Render(title)}
	for _, tab := range tabs {
		if tab.Active {
			parts = append(parts, styleActiveTab.Render(tab.Label))
		} else {
			parts = append(parts, styleTab.Render(tab.Label))
		}
	}
	return strings.Join(parts, " ")
}

// renderLists renders both tense tab-groups with their lists
func renderLists(surface viewstate.Surface) string {
	var b strings.Builder

	b.WriteString(renderTabs("Conjugations", surface.ConjugationTabs))
	b.WriteString("\n")
	if surface.ConjugationPlaceholder != "" {
		b.WriteString(styleSubtle.Render("  " + surface.ConjugationPlaceholder))
		b.WriteString("\n")
	}
	for _, row := range surface.Conjugations {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", row.Label, styleArabic.Render(row.Arabic)))
	}

	b.WriteString("\n")
	b.WriteString(renderTabs("Example sentences", surface.SentenceTabs))
	b.WriteString("\n")
	if surface.SentencePlaceholder != "" {
		b.WriteString(styleSubtle.Render("  " + surface.SentencePlaceholder))
		b.WriteString("\n")
	}
	for i, sentence := range surface.Sentences {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + styleArabic.Render(sentence.Arabic) + "\n")
		b.WriteString("  " + sentence.English + "\n")
		if sentence.Pronunciation != "" {
			b.WriteString("  " + styleSubtle.Italic(true).Render(sentence.Pronunciation) + "\n")
		}
	}

	return b.String()
}

// updateListView refreshes the list viewport from the surface
func (m *Model) updateListView() {
	if m.controller == nil {
		return
	}
	m.listView.SetContent(renderLists(m.controller.Surface()))
}

// renderGoto renders the goto input with the accepted range
func (m *Model) renderGoto(surface viewstate.Surface) string {
	hint := ""
	if surface.GotoMax > 0 {
		hint = styleSubtle.Render(fmt.Sprintf(" (1-%d)", surface.GotoMax))
	}
	return m.gotoInput.View() + hint
}

// renderStatusBar renders the loading indicator, status and key hints
func (m *Model) renderStatusBar() string {
	var left string
	if m.navigator != nil && m.navigator.InFlight() {
		left = m.spinner.View() + " loading"
	} else {
		left = m.statusMsg
	}

	var hint string
	switch m.mode {
	case ModeGoto:
		hint = fmt.Sprintf("%s go  %s back",
			m.keybinds.GetBindingString(keybinds.ContextGoto, keybinds.ActionGotoSubmit),
			m.keybinds.GetBindingString(keybinds.ContextGoto, keybinds.ActionGotoCancel))
	default:
		hint = fmt.Sprintf("%s help  %s quit",
			m.keybinds.GetBindingString(keybinds.ContextCard, keybinds.ActionToggleHelp),
			m.keybinds.GetBindingString(keybinds.ContextCard, keybinds.ActionQuit))
	}

	return styleWarning.Render(left) + "  " + styleSubtle.Render(hint)
}

// renderHelp renders the help overlay
func (m *Model) renderHelp() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Render(m.helpView.View())
}

// updateHelpView lists every binding grouped by category
func (m *Model) updateHelpView() {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n")

	category := ""
	for _, action := range helpActions {
		info := keybinds.GetActionInfo(action)
		if info.Category != category {
			category = info.Category
			b.WriteString("\n" + styleTitle.Render(category) + "\n")
		}

		context := keybinds.ContextCard
		switch action {
		case keybinds.ActionGotoSubmit, keybinds.ActionGotoCancel:
			context = keybinds.ContextGoto
		case keybinds.ActionCloseHelp:
			context = keybinds.ContextHelp
		}
		keys := m.keybinds.GetBindingString(context, action)
		b.WriteString(fmt.Sprintf("  %-20s %s\n", displayKeys(keys), info.Description))
	}

	m.helpView.SetContent(b.String())
}

// helpActions lists the actions shown in the help overlay, in display order
var helpActions = []keybinds.Action{
	keybinds.ActionNextCard,
	keybinds.ActionPreviousCard,
	keybinds.ActionFirstCard,
	keybinds.ActionLastCard,
	keybinds.ActionFocusGoto,
	keybinds.ActionGotoSubmit,
	keybinds.ActionGotoCancel,
	keybinds.ActionFlipCard,
	keybinds.ActionNextConjugationTense,
	keybinds.ActionNextSentenceTense,
	keybinds.ActionScrollUp,
	keybinds.ActionScrollDown,
	keybinds.ActionCopyArabic,
	keybinds.ActionToggleHelp,
	keybinds.ActionCloseHelp,
	keybinds.ActionQuit,
	keybinds.ActionQuitForce,
}

// displayKeys names the space key so it shows up in the help text. Keys are
// sorted, so a space binding always comes first.
func displayKeys(keys string) string {
	if keys == " " {
		return "space"
	}
	if strings.HasPrefix(keys, " ,") {
		return "space" + keys[1:]
	}
	return keys
}

package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/flashdeck/internal/deckclient"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"github.com/studiowebux/flashdeck/internal/navigator"
	"github.com/studiowebux/flashdeck/internal/viewstate"
	"go.uber.org/zap"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeCard Mode = iota
	ModeGoto
	ModeHelp
)

// context returns the keybinding context for a mode
func (m Mode) context() keybinds.Context {
	switch m {
	case ModeGoto:
		return keybinds.ContextGoto
	case ModeHelp:
		return keybinds.ContextHelp
	default:
		return keybinds.ContextCard
	}
}

// Model represents the TUI state
type Model struct {
	controller *viewstate.Controller
	navigator  *navigator.Navigator
	keybinds   *keybinds.Registry
	logger     *zap.Logger
	mode       Mode
	serverURL  string

	gotoInput textinput.Model
	listView  viewport.Model // Conjugations and example sentences
	helpView  viewport.Model
	spinner   spinner.Model

	// copyText writes to the system clipboard; replaced in tests
	copyText func(string) error

	// UI state
	width     int
	height    int
	statusMsg string
}

// Options configures a Model
type Options struct {
	Controller *viewstate.Controller
	Navigator  *navigator.Navigator
	Keybinds   *keybinds.Registry // nil means the default bindings
	Logger     *zap.Logger
	ServerURL  string // Shown in the header
}

// New creates a new TUI model
func New(opts Options) *Model {
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = "Go to card: "
	input.Placeholder = "#"
	input.CharLimit = GotoCharLimit
	input.Width = GotoWidth

	m := &Model{
		controller: opts.Controller,
		navigator:  opts.Navigator,
		keybinds:   registry,
		logger:     logger,
		mode:       ModeCard,
		serverURL:  opts.ServerURL,
		gotoInput:  input,
		listView:   viewport.New(80, 10),
		helpView:   viewport.New(80, 20),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		copyText:   clipboard.WriteAll,
	}
	m.updateListView()

	return m
}

// Init loads the first card
func (m *Model) Init() tea.Cmd {
	return m.startRequest(m.navigator.First())
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case navigator.CardMsg:
		if m.navigator.Handle(msg) {
			m.listView.GotoTop()
			m.updateListView()
			if msg.Err == nil {
				m.statusMsg = fmt.Sprintf("%s in %s", msg.Action, deckclient.FormatDuration(msg.Duration))
			}
		}

	case spinner.TickMsg:
		if m.navigator.InFlight() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}

	return m, cmd
}

// View renders the current state
func (m *Model) View() string {
	if m.mode == ModeHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// startRequest runs a navigation command alongside the loading spinner.
// A nil command means the request was rejected before it was sent.
func (m *Model) startRequest(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		m.updateListView()
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// setStatus sets the status bar text, truncated to StatusMaxLength runes
func (m *Model) setStatus(text string) {
	if runes := []rune(text); len(runes) > StatusMaxLength {
		text = string(runes[:StatusMaxLength-3]) + "..."
	}
	m.statusMsg = text
}

// updateViewport resizes the viewports to the terminal
func (m *Model) updateViewport() {
	m.listView.Width = max(20, m.width-ListWidthMargin)
	m.listView.Height = max(ListMinHeight, m.height-ListHeightOffset)
	m.helpView.Width = max(20, m.width-HelpWidthMargin)
	m.helpView.Height = max(ListMinHeight, m.height-HelpHeightMargin)
	m.updateListView()
	m.updateHelpView()
}

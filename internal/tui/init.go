package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/flashdeck/internal/config"
	"github.com/studiowebux/flashdeck/internal/deckclient"
	"github.com/studiowebux/flashdeck/internal/history"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"github.com/studiowebux/flashdeck/internal/navigator"
	"github.com/studiowebux/flashdeck/internal/viewstate"
	"go.uber.org/zap"
)

// Run starts the TUI against the deck service named in settings.
// config.Initialize must have been called.
func Run(settings *config.Settings, logger *zap.Logger) error {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	controller := viewstate.NewController(nil, settings.Tenses, logger.Named("viewstate"))
	client := deckclient.New(settings.ServerURL, settings.RequestTimeout)

	opts := []navigator.Option{
		navigator.WithLogger(logger.Named("navigator")),
		navigator.WithNavigationErrors(settings.ShowNavigationErrors),
	}

	// The study log is optional; a broken database must not stop a study session
	if settings.IsHistoryEnabled() {
		historyMgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			logger.Warn("study log disabled", zap.String("path", config.DatabasePath), zap.Error(err))
		} else {
			defer func() {
				if err := historyMgr.Close(); err != nil {
					logger.Warn("error closing study log", zap.Error(err))
				}
			}()

			session, err := historyMgr.StartSession(settings.ServerURL)
			if err != nil {
				logger.Warn("failed to start study session", zap.Error(err))
			} else {
				logger.Info("study session started", zap.String("session", session.ID))
				opts = append(opts, navigator.WithRecorder(session))
			}
		}
	}

	m := New(Options{
		Controller: controller,
		Navigator:  navigator.New(client, controller, opts...),
		Keybinds:   registry,
		Logger:     logger.Named("tui"),
		ServerURL:  settings.ServerURL,
	})

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}

/*
Package tui implements the terminal user interface for flashdeck.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: holds the view-state controller, the navigator and widget state
  - Update: routes keys through the keybinds registry and applies
    navigation completions via navigator.Handle
  - View: renders the controller's Surface with lipgloss

# Key Components

  - model.go: Model, modes and message handling
  - keys.go: keyboard input per mode (card, goto, help)
  - render.go: card face, tense tabs, lists, status bar and help overlay
  - init.go: Run wires config, deck client, study log and keybinds

# Threading Model

Requests to the deck service run as tea.Cmds on their own goroutines and
only return navigator.CardMsg values. The controller and navigator are
touched from Update alone.
*/
package tui

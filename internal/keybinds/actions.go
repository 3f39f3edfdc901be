package keybinds

import "sort"

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal Context = "global" // Available everywhere
	ContextCard   Context = "card"   // Card view, goto input not focused
	ContextGoto   Context = "goto"   // Goto input focused
	ContextHelp   Context = "help"   // Help overlay open
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Deck navigation
	ActionNextCard     Action = "next_card"
	ActionPreviousCard Action = "previous_card"
	ActionFirstCard    Action = "first_card"
	ActionLastCard     Action = "last_card"

	// Card face and lists
	ActionFlipCard             Action = "flip_card"
	ActionNextConjugationTense Action = "next_conjugation_tense"
	ActionNextSentenceTense    Action = "next_sentence_tense"
	ActionScrollUp             Action = "scroll_up"
	ActionScrollDown           Action = "scroll_down"
	ActionCopyArabic           Action = "copy_arabic"

	// Goto input
	ActionFocusGoto  Action = "focus_goto"
	ActionGotoSubmit Action = "goto_submit"
	ActionGotoCancel Action = "goto_cancel"

	// Help
	ActionToggleHelp Action = "toggle_help"
	ActionCloseHelp  Action = "close_help"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:                 {ActionQuit, "Quit", "Global"},
	ActionQuitForce:            {ActionQuitForce, "Force quit", "Global"},
	ActionNextCard:             {ActionNextCard, "Next card", "Navigation"},
	ActionPreviousCard:         {ActionPreviousCard, "Previous card", "Navigation"},
	ActionFirstCard:            {ActionFirstCard, "First card", "Navigation"},
	ActionLastCard:             {ActionLastCard, "Last card", "Navigation"},
	ActionFocusGoto:            {ActionFocusGoto, "Go to card number", "Navigation"},
	ActionFlipCard:             {ActionFlipCard, "Flip card", "Card"},
	ActionNextConjugationTense: {ActionNextConjugationTense, "Switch conjugation tense", "Card"},
	ActionNextSentenceTense:    {ActionNextSentenceTense, "Switch sentence tense", "Card"},
	ActionScrollUp:             {ActionScrollUp, "Scroll up", "Card"},
	ActionScrollDown:           {ActionScrollDown, "Scroll down", "Card"},
	ActionCopyArabic:           {ActionCopyArabic, "Copy Arabic word", "Card"},
	ActionGotoSubmit:           {ActionGotoSubmit, "Go to card", "Goto"},
	ActionGotoCancel:           {ActionGotoCancel, "Leave goto input", "Goto"},
	ActionToggleHelp:           {ActionToggleHelp, "Toggle help", "Information"},
	ActionCloseHelp:            {ActionCloseHelp, "Close help", "Information"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the TUI handles
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// AllActions returns every known action sorted by name
func AllActions() []Action {
	actions := make([]Action, 0, len(actionInfos))
	for action := range actionInfos {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}

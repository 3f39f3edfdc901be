package keybinds

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryMatches(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		action  Action
	}{
		{ContextCard, "right", ActionNextCard},
		{ContextCard, "left", ActionPreviousCard},
		{ContextCard, "home", ActionFirstCard},
		{ContextCard, "end", ActionLastCard},
		{ContextCard, " ", ActionFlipCard},
		{ContextCard, "enter", ActionFlipCard},
		{ContextCard, ":", ActionFocusGoto},
		{ContextCard, "g", ActionFocusGoto},
		{ContextCard, "t", ActionNextConjugationTense},
		{ContextCard, "S", ActionNextSentenceTense},
		{ContextCard, "c", ActionCopyArabic},
		{ContextCard, "ctrl+c", ActionQuitForce},
		{ContextGoto, "enter", ActionGotoSubmit},
		{ContextGoto, "esc", ActionGotoCancel},
		{ContextGoto, "ctrl+c", ActionQuitForce},
		{ContextHelp, "?", ActionCloseHelp},
	}

	for _, tt := range tests {
		action, ok := r.Match(tt.context, tt.key)
		assert.True(t, ok, "%s %q", tt.context, tt.key)
		assert.Equal(t, tt.action, action, "%s %q", tt.context, tt.key)
	}

	// Digits typed into the goto input are not bindings
	_, ok := r.Match(ContextGoto, "5")
	assert.False(t, ok)
	_, ok = r.Match(ContextGoto, "right")
	assert.False(t, ok)
}

func TestDefaultRegistryIsValid(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())

	assert.False(t, result.HasErrors(), result.String())
	assert.False(t, result.HasWarnings(), result.String())
	assert.Equal(t, "No issues found", result.String())
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, "h, left, p", r.GetBindingString(ContextCard, ActionPreviousCard))
	assert.Equal(t, "ctrl+c", r.GetBindingString(ContextCard, ActionQuitForce))
	assert.Equal(t, "unbound", r.GetBindingString(ContextGoto, ActionNextCard))
}

func TestApplyConfigReplacesKeys(t *testing.T) {
	r := NewDefaultRegistry()

	err := ApplyConfig(r, &Config{Card: map[string]string{
		"next_card": "x, ctrl+n",
		"flip_card": " ",
	}})
	require.NoError(t, err)

	action, ok := r.Match(ContextCard, "ctrl+n")
	assert.True(t, ok)
	assert.Equal(t, ActionNextCard, action)

	// Old keys of the rebound action are gone
	_, ok = r.Match(ContextCard, "right")
	assert.False(t, ok)
	_, ok = r.Match(ContextCard, "enter")
	assert.False(t, ok)

	action, _ = r.Match(ContextCard, " ")
	assert.Equal(t, ActionFlipCard, action)
}

func TestApplyConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"unknown action", &Config{Card: map[string]string{"execute": "x"}}},
		{"empty action", &Config{Card: map[string]string{"": "x"}}},
		{"bare modifier", &Config{Goto: map[string]string{"goto_submit": "ctrl+"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ApplyConfig(NewDefaultRegistry(), tt.cfg))

			result := NewValidator().ValidateConfig(tt.cfg)
			assert.True(t, result.HasErrors())
		})
	}
}

func TestValidatorWarnsOnShadowingAndReservedKeys(t *testing.T) {
	result := NewValidator().ValidateConfig(&Config{
		Card: map[string]string{"quit": "ctrl+c,q"},
	})

	assert.False(t, result.HasErrors(), result.String())
	require.True(t, result.HasWarnings())

	var messages []string
	for _, w := range result.Warnings {
		messages = append(messages, w.Message)
	}
	assert.Contains(t, messages, "reserved key rebound (may cause issues)")
	assert.Contains(t, messages, "shadows global binding (quit_force -> quit)")
}

func TestFindConflictsReportsUnreachableActions(t *testing.T) {
	conflicts := FindConflicts(&Config{Goto: map[string]string{"goto_cancel": ""}})

	require.Len(t, conflicts, 1)
	assert.Equal(t, "[conflict]  in context 'goto': action goto_cancel has no key", conflicts[0])
}

func TestExportDefaultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	require.NoError(t, CreateExampleConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, " ,enter", cfg.Card["flip_card"])

	r, err := LoadOrDefault(path)
	require.NoError(t, err)

	defaults := NewDefaultRegistry()
	for _, ctx := range []Context{ContextGlobal, ContextCard, ContextGoto, ContextHelp} {
		assert.ElementsMatch(t, defaults.ListBindings(ctx), r.ListBindings(ctx), string(ctx))
	}
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	r, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.True(t, r.HasBinding(ContextCard, "q"))
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()

	clone.Unbind(ContextCard, ActionQuit)

	assert.True(t, r.HasBinding(ContextCard, "q"))
	assert.False(t, clone.HasBinding(ContextCard, "q"))
}

func TestActionInfo(t *testing.T) {
	assert.Equal(t, "Flip card", GetActionInfo(ActionFlipCard).Description)
	assert.Equal(t, "Unknown", GetActionInfo("nope").Category)
	assert.True(t, IsGlobalAction(ActionQuitForce))
	assert.Contains(t, AllActions(), ActionCopyArabic)
}

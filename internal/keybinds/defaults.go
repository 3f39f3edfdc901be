package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerCardBindings(r)
	registerGotoBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerCardBindings sets up the card view
func registerCardBindings(r *Registry) {
	r.Register(ContextCard, "q", ActionQuit)

	r.RegisterMultiple(ContextCard, []string{"right", "l", "n"}, ActionNextCard)
	r.RegisterMultiple(ContextCard, []string{"left", "h", "p"}, ActionPreviousCard)
	r.Register(ContextCard, "home", ActionFirstCard)
	r.Register(ContextCard, "end", ActionLastCard)

	r.RegisterMultiple(ContextCard, []string{" ", "enter"}, ActionFlipCard)
	r.RegisterMultiple(ContextCard, []string{"t", "T"}, ActionNextConjugationTense)
	r.RegisterMultiple(ContextCard, []string{"s", "S"}, ActionNextSentenceTense)
	r.RegisterMultiple(ContextCard, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextCard, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextCard, "c", ActionCopyArabic)

	r.RegisterMultiple(ContextCard, []string{":", "g"}, ActionFocusGoto)
	r.Register(ContextCard, "?", ActionToggleHelp)
}

// registerGotoBindings sets up the goto input. Unbound keys go to the input.
func registerGotoBindings(r *Registry) {
	r.Register(ContextGoto, "enter", ActionGotoSubmit)
	r.Register(ContextGoto, "esc", ActionGotoCancel)
}

// registerHelpBindings sets up the help overlay
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseHelp)
}

/*
Package keybinds provides customizable keyboard binding management for the
flashcard TUI.

# Contexts

  - global: bindings available everywhere (ctrl+c)
  - card: the card view while the goto input is not focused
  - goto: the goto input; keys without a binding are typed into it
  - help: the help overlay

A key bound in a specific context overrides the global binding.

# Configuration

Users customise bindings in ~/.flashdeck/keybinds.json. Each section maps an
action to a comma-separated key list that replaces the default keys of that
action:

	{
	  "version": "1.0",
	  "card": {
	    "next_card": "right,l",
	    "flip_card": " ,f"
	  }
	}

Run "flashdeck keybinds init" to write the defaults as a starting point.
Unknown actions and empty keys are rejected when the file is loaded.
*/
package keybinds

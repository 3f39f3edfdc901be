package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/studiowebux/flashdeck/internal/config"
)

// Config represents the user's keybinding configuration. Each section maps
// an action to a comma-separated key list, replacing the default keys of
// that action in that context.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Card    map[string]string `json:"card,omitempty"`
	Goto    map[string]string `json:"goto,omitempty"`
	Help    map[string]string `json:"help,omitempty"`
}

// sections pairs each config section with its context
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal: c.Global,
		ContextCard:   c.Card,
		ContextGoto:   c.Goto,
		ContextHelp:   c.Help,
	}
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, config.FilePermissions)
}

// ApplyConfig applies user configuration to a registry
// User bindings replace the default keys of the actions they name
func ApplyConfig(registry *Registry, cfg *Config) error {
	for context, section := range cfg.sections() {
		for actionStr, keyList := range section {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}

			keys := splitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, cfg); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults exports the default keybindings as a config
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	cfg := &Config{
		Version: "1.0",
		Global:  map[string]string{},
		Card:    map[string]string{},
		Goto:    map[string]string{},
		Help:    map[string]string{},
	}

	for context, section := range cfg.sections() {
		for _, action := range AllActions() {
			keys := keysFor(registry.bindings[context], action)
			if len(keys) > 0 {
				section[string(action)] = strings.Join(keys, ",")
			}
		}
	}

	return cfg
}

// CreateExampleConfig writes the default bindings to path so users can edit them
func CreateExampleConfig(path string) error {
	return SaveConfig(ExportDefaults(), path)
}

// splitKeys splits a comma-separated key list. A lone "," and " " are keys
// themselves.
func splitKeys(list string) []string {
	if list == "," || list == " " {
		return []string{list}
	}

	var keys []string
	for _, key := range strings.Split(list, ",") {
		if key != " " {
			key = strings.TrimSpace(key)
		}
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/studiowebux/flashdeck/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.flashdeck or $FLASHDECK_HOME)
	ConfigDir string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// DatabasePath is the SQLite database holding the study log
	DatabasePath string

	// LogFile is where the TUI writes its diagnostic log
	LogFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string
)

const defaultSettings = `# flashdeck settings
server_url: http://localhost:8000
request_timeout: 0s
log_level: info
history_enabled: true
show_navigation_errors: false
tenses:
  - key: past
    label: Past
  - key: present
    label: Present
serve:
  host: localhost
  port: 8000
  deck_file: ""
  cards_path: verbs
  database_url: ""
`

// Settings holds every tunable of the client and the deck service
type Settings struct {
	ServerURL            string           `yaml:"server_url"`
	RequestTimeout       time.Duration    `yaml:"request_timeout"` // 0 means no timeout
	LogFile              string           `yaml:"log_file"`
	LogLevel             string           `yaml:"log_level"`
	HistoryEnabled       *bool            `yaml:"history_enabled"`
	ShowNavigationErrors bool             `yaml:"show_navigation_errors"`
	Tenses               []types.TenseTab `yaml:"tenses"`
	OTLPEndpoint         string           `yaml:"otlp_endpoint"`
	Serve                ServeSettings    `yaml:"serve"`
}

// ServeSettings configures the deck service
type ServeSettings struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	DeckFile    string `yaml:"deck_file"`    // JSON, JSONC or YAML deck; empty means sample deck
	CardsPath   string `yaml:"cards_path"`   // JMESPath selecting the card list inside the deck file
	DatabaseURL string `yaml:"database_url"` // Postgres DSN; takes precedence over DeckFile
}

// Initialize sets up the configuration directory and files
// It creates ~/.flashdeck/ (or $FLASHDECK_HOME) if it doesn't exist
func Initialize() error {
	dir := os.Getenv("FLASHDECK_HOME")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".flashdeck")
	}

	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "flashdeck.db")
	LogFile = filepath.Join(ConfigDir, "flashdeck.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettings), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// Defaults returns the built-in settings
func Defaults() *Settings {
	var s Settings
	// defaultSettings is a constant; a decode failure is a programming error
	if err := yaml.Unmarshal([]byte(defaultSettings), &s); err != nil {
		panic(fmt.Sprintf("invalid default settings: %v", err))
	}
	return &s
}

// Load reads settings from path on top of the defaults, then applies a .env
// file from the working directory (if any) and environment overrides.
// A missing settings file is not an error.
func Load(path string) (*Settings, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			// Decode over defaults so omitted keys keep their default value
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}

	if s.LogFile == "" {
		s.LogFile = LogFile
	}

	if err := s.normalize(); err != nil {
		return nil, err
	}

	return s, nil
}

// IsHistoryEnabled returns whether the study log is kept (default true)
func (s *Settings) IsHistoryEnabled() bool {
	if s.HistoryEnabled == nil {
		return true
	}
	return *s.HistoryEnabled
}

// ServeAddr returns the host:port the deck service listens on
func (s *Settings) ServeAddr() string {
	return fmt.Sprintf("%s:%d", s.Serve.Host, s.Serve.Port)
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("FLASHDECK_SERVER_URL"); v != "" {
		s.ServerURL = v
	}
	if v := os.Getenv("FLASHDECK_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("FLASHDECK_DATABASE_URL"); v != "" {
		s.Serve.DatabaseURL = v
	}
	if v := os.Getenv("FLASHDECK_DECK_FILE"); v != "" {
		s.Serve.DeckFile = v
	}
	if v := os.Getenv("FLASHDECK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FLASHDECK_PORT %q: %w", v, err)
		}
		s.Serve.Port = port
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		s.OTLPEndpoint = v
	}
	return nil
}

// normalize validates the settings and canonicalises tense keys
func (s *Settings) normalize() error {
	u, err := url.Parse(s.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url %q: must be an absolute http(s) URL", s.ServerURL)
	}
	s.ServerURL = strings.TrimRight(s.ServerURL, "/")

	if s.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}

	if s.Serve.Port <= 0 || s.Serve.Port > 65535 {
		return fmt.Errorf("invalid serve.port %d", s.Serve.Port)
	}

	seen := make(map[types.TenseKey]bool)
	tenses := make([]types.TenseTab, 0, len(s.Tenses))
	for _, tab := range s.Tenses {
		key := types.TenseKey(strings.ToLower(strings.TrimSpace(string(tab.Key))))
		if key == "" {
			return fmt.Errorf("tense with empty key")
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if tab.Label == "" {
			tab.Label = strings.ToUpper(string(key[:1])) + string(key[1:])
		}
		tab.Key = key
		tenses = append(tenses, tab)
	}
	if len(tenses) == 0 {
		tenses = types.DefaultTenseTabs()
	}
	s.Tenses = tenses

	return nil
}

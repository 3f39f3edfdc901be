package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studiowebux/flashdeck/internal/cli"
	"github.com/studiowebux/flashdeck/internal/config"
	"github.com/studiowebux/flashdeck/internal/history"
	"github.com/studiowebux/flashdeck/internal/keybinds"
	"github.com/studiowebux/flashdeck/internal/logging"
	"github.com/studiowebux/flashdeck/internal/telemetry"
	"github.com/studiowebux/flashdeck/internal/tui"
	versioncheck "github.com/studiowebux/flashdeck/internal/version"
	"go.uber.org/zap"
)

var (
	version = "0.1.0"
)

// telemetryShutdownTimeout bounds the final span flush
const telemetryShutdownTimeout = 5 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flashdeck",
	Short: "flashdeck - Arabic verb flashcards in the terminal",
	Long: `flashdeck is a flashcard study tool with an interactive TUI.

Run without arguments to study the deck served at server_url. Start a deck
service with 'flashdeck serve'.

Examples:
  flashdeck                            # Start interactive TUI
  flashdeck --server http://host:8000  # Study against another deck service
  flashdeck serve                      # Serve the sample deck on :8000
  flashdeck serve --deck verbs.yaml    # Serve a deck file
  flashdeck history --limit 20         # Show recent study log entries
  flashdeck keybinds init              # Write keybinds.json with the defaults`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime("flashdeck", true, func(settings *config.Settings, logger *zap.Logger) error {
			if flagServer != "" {
				settings.ServerURL = flagServer
			}
			return tui.Run(settings, logger)
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a deck over HTTP",
	Long: `Serve a deck over HTTP for the TUI.

The deck comes from Postgres when serve.database_url is set, otherwise from
serve.deck_file (JSON, JSONC or YAML), otherwise the built-in sample deck.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime("flashdeck-serve", false, func(settings *config.Settings, logger *zap.Logger) error {
			if flagDeck != "" {
				settings.Serve.DeckFile = flagDeck
			}
			if flagCardsPath != "" {
				settings.Serve.CardsPath = flagCardsPath
			}
			if cmd.Flags().Changed("port") {
				settings.Serve.Port = flagPort
			}
			return cli.Serve(settings, logger)
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck file into Postgres",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime("flashdeck-import", false, func(settings *config.Settings, logger *zap.Logger) error {
			if flagCardsPath != "" {
				settings.Serve.CardsPath = flagCardsPath
			}
			n, err := cli.ImportDeck(cmd.Context(), settings, args[0], logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards\n", n)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show the study log",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		if flagClear {
			return cli.ClearHistory(os.Stdin, cmd.OutOrStdout(), mgr, flagYes)
		}

		opts := cli.HistoryOptions{
			Limit:        flagLimit,
			Sessions:     flagSessions,
			MostViewed:   flagMostViewed,
			OutputFormat: flagOutput,
		}
		if len(args) > 0 {
			opts.SessionID = args[0]
		} else if flagPick {
			id, err := cli.PromptForSession(mgr)
			if errors.Is(err, cli.ErrSelectionCancelled) {
				return nil
			}
			if err != nil {
				return err
			}
			opts.SessionID = id
		}

		return cli.PrintHistory(cmd.OutOrStdout(), mgr, opts)
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage keyboard bindings",
}

var keybindsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write keybinds.json with the default bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if _, err := os.Stat(config.KeybindsFile); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.KeybindsFile)
		}

		if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.KeybindsFile)
		return nil
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		cfg, err := keybinds.LoadConfig(config.KeybindsFile)
		if err != nil {
			return err
		}

		result := keybinds.NewValidator().ValidateConfig(cfg)
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("keybinds.json has %d error(s)", len(result.Errors))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "flashdeck %s\n", version)
		if !flagCheck {
			return nil
		}

		update, err := versioncheck.NewChecker("").Check(cmd.Context(), version)
		if err != nil {
			return err
		}
		if update.Available {
			fmt.Fprintf(out, "Update available: %s (%s)\n", update.Latest, update.URL)
		} else {
			fmt.Fprintln(out, "Up to date")
		}
		return nil
	},
}

// Flags for root command
var (
	flagServer string
)

// Flags for serve and import
var (
	flagDeck      string
	flagCardsPath string
	flagPort      int
)

// Flags for history
var (
	flagLimit      int
	flagSessions   bool
	flagMostViewed bool
	flagPick       bool
	flagOutput     string
	flagClear      bool
	flagYes        bool
)

// Flags for keybinds init
var (
	flagForce bool
)

// Flags for version
var (
	flagCheck bool
)

func init() {
	rootCmd.Flags().StringVar(&flagServer, "server", "", "Deck service URL (overrides server_url)")

	serveCmd.Flags().StringVar(&flagDeck, "deck", "", "Deck file (JSON, JSONC or YAML)")
	serveCmd.Flags().StringVar(&flagCardsPath, "cards-path", "", "JMESPath selecting the cards inside the deck file")
	serveCmd.Flags().IntVar(&flagPort, "port", 8000, "Port to listen on")

	importCmd.Flags().StringVar(&flagCardsPath, "cards-path", "", "JMESPath selecting the cards inside the deck file")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 50, "Number of entries to show (0 for all)")
	historyCmd.Flags().BoolVar(&flagSessions, "sessions", false, "List study sessions")
	historyCmd.Flags().BoolVar(&flagMostViewed, "most-viewed", false, "List the most viewed cards")
	historyCmd.Flags().BoolVar(&flagPick, "pick", false, "Pick a session interactively")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the study log")
	historyCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")

	keybindsInitCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing keybinds.json")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")

	// Add subcommands
	keybindsCmd.AddCommand(keybindsInitCmd)
	keybindsCmd.AddCommand(keybindsCheckCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(versionCmd)
}

// withRuntime initializes config, logging and tracing, runs fn, then flushes
// the logger and the tracer provider. logToFile sends the log to
// settings.LogFile instead of stderr; the TUI owns the terminal.
func withRuntime(serviceName string, logToFile bool, fn func(*config.Settings, *zap.Logger) error) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.Load(config.SettingsFile)
	if err != nil {
		return err
	}

	logPath := ""
	if logToFile {
		logPath = settings.LogFile
	}
	logger, err := logging.New(logPath, settings.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	shutdown, err := telemetry.Setup(context.Background(), settings.OTLPEndpoint, serviceName)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Warn("failed to flush traces", zap.Error(err))
			}
		}()
	}

	logger.Debug("settings loaded", zap.String("file", config.SettingsFile), zap.String("server_url", settings.ServerURL))
	return fn(settings, logger)
}

package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/studiowebux/flashdeck/internal/config"
	"github.com/studiowebux/flashdeck/internal/deck"
	"github.com/studiowebux/flashdeck/internal/history"
	"github.com/studiowebux/flashdeck/internal/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the history commands
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// confirm asks a yes/no question on stderr and reads the answer from in
func confirm(in io.Reader, question string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// Serve runs the deck service until SIGINT or SIGTERM
func Serve(settings *config.Settings, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := deckSource(ctx, settings, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	cards := deck.LoadWithFallback(ctx, src, logger)
	srv := server.NewServer(deck.New(cards), settings.ServeAddr(), logger)
	return srv.Run(ctx)
}

// deckSource picks the card source: Postgres when a database URL is set,
// then the deck file, then nothing (sample deck)
func deckSource(ctx context.Context, settings *config.Settings, logger *zap.Logger) (deck.Source, func(), error) {
	noop := func() {}

	if dsn := settings.Serve.DatabaseURL; dsn != "" {
		store, closeDB, err := openStore(ctx, dsn, logger)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Serving deck from Postgres")
		return store, closeDB, nil
	}

	if path := settings.Serve.DeckFile; path != "" {
		logger.Info("Serving deck from file", zap.String("path", path), zap.String("cards_path", settings.Serve.CardsPath))
		return deck.FileSource{Path: path, CardsPath: settings.Serve.CardsPath}, noop, nil
	}

	return nil, noop, nil
}

// openStore connects to Postgres and brings the schema up to date
func openStore(ctx context.Context, dsn string, logger *zap.Logger) (*deck.PostgresStore, func(), error) {
	db, err := deck.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	store := deck.NewPostgresStore(db)
	if err := store.Migrate(logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	return store, func() {
		if err := db.Close(); err != nil {
			logger.Warn("error closing database", zap.Error(err))
		}
	}, nil
}

// ImportDeck loads a deck file and stores its cards in Postgres, replacing
// the cards already there
func ImportDeck(ctx context.Context, settings *config.Settings, path string, logger *zap.Logger) (int, error) {
	if settings.Serve.DatabaseURL == "" {
		return 0, fmt.Errorf("no database configured (set serve.database_url or FLASHDECK_DATABASE_URL)")
	}

	cards, err := deck.LoadFile(path, settings.Serve.CardsPath)
	if err != nil {
		return 0, err
	}

	store, closeDB, err := openStore(ctx, settings.Serve.DatabaseURL, logger)
	if err != nil {
		return 0, err
	}
	defer closeDB()

	if err := store.Import(ctx, cards); err != nil {
		return 0, err
	}

	logger.Info("Imported deck", zap.String("path", path), zap.Int("cards", len(cards)))
	return len(cards), nil
}

// HistoryOptions selects what the history command prints
type HistoryOptions struct {
	Limit        int
	Sessions     bool   // List sessions instead of entries
	MostViewed   bool   // List the most viewed cards
	SessionID    string // Only entries of this session
	OutputFormat string // text, json, yaml
}

// PrintHistory writes the study log to w
func PrintHistory(w io.Writer, mgr *history.Manager, opts HistoryOptions) error {
	var (
		data any
		text string
	)

	switch {
	case opts.Sessions:
		sessions, err := mgr.Sessions(opts.Limit)
		if err != nil {
			return err
		}
		data, text = sessions, formatSessions(sessions)

	case opts.MostViewed:
		counts, err := mgr.MostViewed(opts.Limit)
		if err != nil {
			return err
		}
		data, text = counts, formatCounts(counts)

	case opts.SessionID != "":
		entries, err := mgr.LoadSession(opts.SessionID)
		if err != nil {
			return err
		}
		if opts.OutputFormat == FormatJSON {
			return history.WriteJSON(w, entries)
		}
		data, text = entries, history.FormatEntries(entries)

	default:
		entries, err := mgr.Load(opts.Limit)
		if err != nil {
			return err
		}
		if opts.OutputFormat == FormatJSON {
			return history.WriteJSON(w, entries)
		}
		data, text = entries, history.FormatEntries(entries)
	}

	output, err := formatOutput(data, text, opts.OutputFormat)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, output)
	return err
}

// ClearHistory deletes the study log after confirmation. assumeYes skips the
// question.
func ClearHistory(in io.Reader, w io.Writer, mgr *history.Manager, assumeYes bool) error {
	count, err := mgr.GetCount()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Fprintln(w, "Study log is already empty")
		return nil
	}

	if !assumeYes {
		ok, err := confirm(in, fmt.Sprintf("Delete %d study log entries?", count))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Aborted")
			return nil
		}
	}

	if err := mgr.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted %d entries\n", count)
	return nil
}

// formatOutput renders data in the requested format; text is used as is for
// the text format
func formatOutput(data any, text, format string) (string, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil

	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case FormatText, "":
		if text == "" {
			return "No entries\n", nil
		}
		return text, nil

	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func formatSessions(sessions []history.SessionSummary) string {
	var sb strings.Builder
	for _, s := range sessions {
		sb.WriteString(fmt.Sprintf("%s  %s  %4d cards  %s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.ID, s.Cards, s.ServerURL))
	}
	return sb.String()
}

func formatCounts(counts []history.CardCount) string {
	var sb strings.Builder
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("%5d  %s  %s\n", c.Views, c.English, c.Arabic))
	}
	return sb.String()
}

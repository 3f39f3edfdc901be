package deck

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/studiowebux/flashdeck/internal/types"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// PostgresStore keeps a deck in the cards table
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the database at dsn
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// NewPostgresStore creates a store over db
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded schema migrations
func (s *PostgresStore) Migrate(logger *zap.Logger) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgresdb.WithInstance(s.db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// Cards returns the stored deck ordered by position
func (s *PostgresStore) Cards(ctx context.Context) ([]types.CardSnapshot, error) {
	query := `
		SELECT english, arabic, form, pronunciation, conjugations, example_sentences
		FROM cards
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	defer rows.Close()

	var cards []types.CardSnapshot
	for rows.Next() {
		var card types.CardSnapshot
		var conjugations, sentences []byte

		if err := rows.Scan(&card.English, &card.Arabic, &card.Form, &card.Pronunciation, &conjugations, &sentences); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}

		if len(conjugations) > 0 {
			if err := json.Unmarshal(conjugations, &card.Conjugations); err != nil {
				return nil, fmt.Errorf("card %q has invalid conjugations: %w", card.English, err)
			}
		}
		if len(sentences) > 0 {
			if err := json.Unmarshal(sentences, &card.ExampleSentences); err != nil {
				return nil, fmt.Errorf("card %q has invalid example sentences: %w", card.English, err)
			}
		}

		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// Import replaces the stored deck with cards, in order
func (s *PostgresStore) Import(ctx context.Context, cards []types.CardSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}

	query := `
		INSERT INTO cards (position, english, arabic, form, pronunciation, conjugations, example_sentences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, card := range cards {
		conjugations, err := nullableJSON(card.Conjugations, len(card.Conjugations))
		if err != nil {
			return fmt.Errorf("failed to encode conjugations of %q: %w", card.English, err)
		}
		sentences, err := nullableJSON(card.ExampleSentences, len(card.ExampleSentences))
		if err != nil {
			return fmt.Errorf("failed to encode example sentences of %q: %w", card.English, err)
		}

		if _, err := tx.ExecContext(ctx, query,
			i+1, card.English, card.Arabic, card.Form, card.Pronunciation, conjugations, sentences,
		); err != nil {
			return fmt.Errorf("failed to insert card %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// nullableJSON encodes v, or returns nil (SQL NULL) when it is empty
func nullableJSON(v any, size int) (any, error) {
	if size == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

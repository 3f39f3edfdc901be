// Package deck holds the card deck served by the deck service: a cursor over
// an ordered card list plus the sources it can be loaded from (built-in
// sample, JSON/JSONC/YAML file, Postgres).
package deck

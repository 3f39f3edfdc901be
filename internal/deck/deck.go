package deck

import (
	"sync"

	"github.com/studiowebux/flashdeck/internal/types"
)

// Placeholder texts served when there is no card to show
const (
	EmptyEnglish   = "No cards available"
	EmptyArabic    = "لا توجد بطاقات"
	InvalidEnglish = "Invalid card number"
	InvalidArabic  = "رقم البطاقة غير صالح"
)

// Deck is an ordered list of cards with a cursor. It is safe for concurrent use.
type Deck struct {
	mu    sync.Mutex
	cards []types.CardSnapshot
	index int
}

// New creates a deck positioned on its first card
func New(cards []types.CardSnapshot) *Deck {
	return &Deck{cards: append([]types.CardSnapshot(nil), cards...)}
}

// Replace swaps the deck contents and rewinds the cursor
func (d *Deck) Replace(cards []types.CardSnapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = append([]types.CardSnapshot(nil), cards...)
	d.index = 0
}

// Total returns the number of cards
func (d *Deck) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// Current returns the card under the cursor; false when the deck is empty
func (d *Deck) Current() (types.CardSnapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current()
}

// Next advances the cursor, wrapping from the last card to the first
func (d *Deck) Next() (types.CardSnapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) > 0 {
		d.index = (d.index + 1) % len(d.cards)
	}
	return d.current()
}

// Previous moves the cursor back, wrapping from the first card to the last
func (d *Deck) Previous() (types.CardSnapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := len(d.cards); n > 0 {
		d.index = (d.index - 1 + n) % n
	}
	return d.current()
}

// First moves the cursor to the first card
func (d *Deck) First() (types.CardSnapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index = 0
	return d.current()
}

// Last moves the cursor to the last card
func (d *Deck) Last() (types.CardSnapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) > 0 {
		d.index = len(d.cards) - 1
	}
	return d.current()
}

// GoTo moves the cursor to a 1-based card number. Out of range leaves the
// cursor where it was and returns false.
func (d *Deck) GoTo(cardNumber int) (types.CardSnapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cardNumber < 1 || cardNumber > len(d.cards) {
		return types.CardSnapshot{}, false
	}
	d.index = cardNumber - 1
	return d.current()
}

// Cards returns every card with its position filled in
func (d *Deck) Cards() []types.CardSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]types.CardSnapshot, len(d.cards))
	for i := range d.cards {
		out[i] = d.at(i)
	}
	return out
}

// EmptyCard is served by directional endpoints when the deck is empty
func EmptyCard() types.CardSnapshot {
	return types.CardSnapshot{English: EmptyEnglish, Arabic: EmptyArabic}
}

// InvalidCard is served by goto for an out-of-range card number
func InvalidCard(total int) types.CardSnapshot {
	return types.CardSnapshot{English: InvalidEnglish, Arabic: InvalidArabic, Total: total}
}

func (d *Deck) current() (types.CardSnapshot, bool) {
	if len(d.cards) == 0 {
		return types.CardSnapshot{}, false
	}
	return d.at(d.index), true
}

func (d *Deck) at(i int) types.CardSnapshot {
	card := d.cards[i]
	card.Position = i + 1
	card.Total = len(d.cards)
	return card
}

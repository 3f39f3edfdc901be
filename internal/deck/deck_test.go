package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/flashdeck/internal/types"
	"golang.org/x/sync/errgroup"
)

func positions(t *testing.T, steps ...func() (types.CardSnapshot, bool)) []int {
	t.Helper()
	var got []int
	for _, step := range steps {
		card, ok := step()
		require.True(t, ok)
		got = append(got, card.Position)
	}
	return got
}

func TestNavigationWrapsAround(t *testing.T) {
	d := New(SampleCards())

	got := positions(t, d.Next, d.Next, d.Next, d.Previous, d.Previous, d.Previous, d.Last, d.First)

	assert.Equal(t, []int{2, 3, 1, 3, 2, 1, 3, 1}, got)
}

func TestSnapshotCarriesTotal(t *testing.T) {
	d := New(SampleCards())

	card, ok := d.Last()
	require.True(t, ok)

	assert.Equal(t, "to study", card.English)
	assert.Equal(t, 3, card.Position)
	assert.Equal(t, 3, card.Total)
}

func TestGoTo(t *testing.T) {
	d := New(SampleCards())

	card, ok := d.GoTo(2)
	require.True(t, ok)
	assert.Equal(t, "to read", card.English)

	for _, n := range []int{0, -1, 4} {
		_, ok := d.GoTo(n)
		assert.False(t, ok, "card %d", n)
	}

	// Out of range leaves the cursor in place
	current, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, 2, current.Position)
}

func TestEmptyDeck(t *testing.T) {
	d := New(nil)

	for _, step := range []func() (types.CardSnapshot, bool){d.Next, d.Previous, d.First, d.Last, d.Current} {
		_, ok := step()
		assert.False(t, ok)
	}
	_, ok := d.GoTo(1)
	assert.False(t, ok)
	assert.Zero(t, d.Total())
	assert.Empty(t, d.Cards())
}

func TestReplaceRewinds(t *testing.T) {
	d := New(SampleCards())
	d.Last()

	d.Replace(SampleCards()[:2])

	card, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, 1, card.Position)
	assert.Equal(t, 2, card.Total)
}

func TestCardsFillsPositions(t *testing.T) {
	cards := New(SampleCards()).Cards()

	require.Len(t, cards, 3)
	for i, card := range cards {
		assert.Equal(t, i+1, card.Position)
		assert.Equal(t, 3, card.Total)
	}
}

func TestPlaceholders(t *testing.T) {
	empty := EmptyCard()
	assert.Equal(t, "No cards available", empty.English)
	assert.Zero(t, empty.Position)
	assert.Zero(t, empty.Total)

	invalid := InvalidCard(7)
	assert.Equal(t, "Invalid card number", invalid.English)
	assert.Equal(t, 7, invalid.Total)
}

func TestConcurrentNavigationKeepsCursorInRange(t *testing.T) {
	d := New(SampleCards())

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			d.Next()
			d.Previous()
			d.GoTo(2)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	card, ok := d.Current()
	require.True(t, ok)
	assert.GreaterOrEqual(t, card.Position, 1)
	assert.LessOrEqual(t, card.Position, 3)
}

func TestSampleCardsHaveFullTables(t *testing.T) {
	for _, card := range SampleCards() {
		for _, tense := range []types.TenseKey{types.TensePast, types.TensePresent} {
			forms, ok := card.ConjugationsFor(tense)
			require.True(t, ok, "%s %s", card.English, tense)
			assert.Len(t, forms, len(types.Persons))
			for i, form := range forms {
				assert.Equal(t, types.Persons[i], form.Person)
			}
		}
	}
}

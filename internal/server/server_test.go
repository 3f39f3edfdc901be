package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/flashdeck/internal/deck"
	"github.com/studiowebux/flashdeck/internal/deckclient"
	"github.com/studiowebux/flashdeck/internal/types"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cards []types.CardSnapshot) *httptest.Server {
	t.Helper()
	s := NewServer(deck.New(cards), "127.0.0.1:0", zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getCard(t *testing.T, url string) types.CardSnapshot {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	card, err := types.DecodeCard(body)
	require.NoError(t, err)
	return *card
}

func postGoto(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url+"/goto", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestDirectionalEndpoints(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	tests := []struct {
		path     string
		position int
		english  string
	}{
		{"/next", 2, "to read"},
		{"/next", 3, "to study"},
		{"/next", 1, "to write"},
		{"/previous", 3, "to study"},
		{"/first", 1, "to write"},
		{"/last", 3, "to study"},
	}

	for _, tt := range tests {
		card := getCard(t, ts.URL+tt.path)
		assert.Equal(t, tt.position, card.Position, tt.path)
		assert.Equal(t, tt.english, card.English, tt.path)
		assert.Equal(t, 3, card.Total)
	}
}

func TestConjugationOrderOnTheWire(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	resp, err := http.Get(ts.URL + "/first")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	he := strings.Index(string(body), `"he"`)
	they := strings.Index(string(body), `"they"`)
	assert.True(t, he >= 0 && they > he, "persons keep table order")
}

func TestEmptyDeckPlaceholder(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, path := range []string{"/next", "/previous", "/first", "/last"} {
		card := getCard(t, ts.URL+path)
		assert.Equal(t, "No cards available", card.English)
		assert.Zero(t, card.Position)
		assert.Zero(t, card.Total)
	}
}

func TestGoto(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	resp, body := postGoto(t, ts.URL, `{"card_number": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := types.DecodeGotoResponse(body)
	require.NoError(t, err)
	assert.False(t, got.Error)
	assert.Equal(t, "to read", got.English)
	assert.Contains(t, string(body), `"error":false`)

	// The cursor moved
	assert.Equal(t, 3, getCard(t, ts.URL+"/next").Position)
}

func TestGotoOutOfRange(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	for _, body := range []string{`{"card_number": 0}`, `{"card_number": 4}`, `{"card_number": -2}`} {
		_, data := postGoto(t, ts.URL, body)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, true, raw["error"])
		assert.Equal(t, float64(3), raw["total"])
		assert.Equal(t, "Invalid card number", raw["english"])
	}
}

func TestGotoDefaultsToFirstCard(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())
	getCard(t, ts.URL+"/last")

	for _, body := range []string{`{}`, ``} {
		_, data := postGoto(t, ts.URL, body)
		got, err := types.DecodeGotoResponse(data)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Position)
	}
}

func TestGotoMalformedJSON(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	for _, body := range []string{`{"card_number":`, `{"card_number": "two"}`, `[1]`} {
		resp, _ := postGoto(t, ts.URL, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestCardsAndHealth(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	resp, err := http.Get(ts.URL + "/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	var cards []types.CardSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	assert.Len(t, cards, 3)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	body, _ := io.ReadAll(health.Body)
	assert.Equal(t, "OK\n", string(body))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())

	resp, err := http.Post(ts.URL+"/next", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestClientRoundTrip(t *testing.T) {
	ts := newTestServer(t, deck.SampleCards())
	client := deckclient.New(ts.URL, time.Second)
	ctx := context.Background()

	card, err := client.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "to study", card.English)

	forms, ok := card.ConjugationsFor(types.TensePresent)
	require.True(t, ok)
	assert.Equal(t, types.PersonHe, forms[0].Person)
	assert.Equal(t, types.PersonThey, forms[len(forms)-1].Person)

	resp, err := client.GoTo(ctx, 9)
	require.NoError(t, err)
	assert.True(t, resp.Error)
	assert.Equal(t, 3, resp.Total)
}

func TestStartStop(t *testing.T) {
	s := NewServer(deck.New(deck.SampleCards()), "127.0.0.1:0", nil)
	require.NoError(t, s.Start())

	card := getCard(t, s.Address()+"/first")
	assert.Equal(t, 1, card.Position)

	require.NoError(t, s.Stop())
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewServer(deck.New(deck.SampleCards()), "127.0.0.1:0", nil)
	require.NoError(t, s.Listen())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(s.Address() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package deckclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/flashdeck/internal/telemetry"
	"github.com/studiowebux/flashdeck/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ErrStatus is returned when the deck service answers with a non-2xx status
var ErrStatus = errors.New("unexpected status")

// Direction names a directional navigation endpoint
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
	DirectionFirst    Direction = "first"
	DirectionLast     Direction = "last"
)

// maxBodySize caps the response body read from the deck service
const maxBodySize = 4 << 20

// Client talks to the deck service
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     oteltrace.Tracer
}

// New creates a client for the deck service at baseURL.
// timeout bounds each request; zero means no timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{},
		},
		tracer: telemetry.Tracer("deckclient"),
	}
}

// BaseURL returns the deck service address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Next fetches the card after the current one
func (c *Client) Next(ctx context.Context) (*types.CardSnapshot, error) {
	return c.Navigate(ctx, DirectionNext)
}

// Previous fetches the card before the current one
func (c *Client) Previous(ctx context.Context) (*types.CardSnapshot, error) {
	return c.Navigate(ctx, DirectionPrevious)
}

// First fetches the first card of the deck
func (c *Client) First(ctx context.Context) (*types.CardSnapshot, error) {
	return c.Navigate(ctx, DirectionFirst)
}

// Last fetches the last card of the deck
func (c *Client) Last(ctx context.Context) (*types.CardSnapshot, error) {
	return c.Navigate(ctx, DirectionLast)
}

// Navigate issues GET /{direction} and decodes the card
func (c *Client) Navigate(ctx context.Context, direction Direction) (*types.CardSnapshot, error) {
	body, err := c.do(ctx, http.MethodGet, "/"+string(direction), nil)
	if err != nil {
		return nil, err
	}

	card, err := types.DecodeCard(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", direction, err)
	}
	return card, nil
}

// GoTo issues POST /goto for a 1-based card number. An out-of-range number
// is not an error: the response carries Error set and the deck size in Total.
func (c *Client) GoTo(ctx context.Context, cardNumber int) (*types.GotoResponse, error) {
	payload, err := json.Marshal(types.GotoRequest{CardNumber: cardNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to encode goto request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/goto", payload)
	if err != nil {
		return nil, err
	}

	resp, err := types.DecodeGotoResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode goto response: %w", err)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !IsSuccessStatus(resp.StatusCode) {
		err := fmt.Errorf("%w: %s %s returned %s", ErrStatus, method, path, resp.Status)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return body, nil
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// FormatDuration formats a duration to a short human-readable string
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
}

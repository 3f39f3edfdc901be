package navigator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/flashdeck/internal/deckclient"
	"github.com/studiowebux/flashdeck/internal/types"
	"github.com/studiowebux/flashdeck/internal/viewstate"
	"go.uber.org/zap"
)

// User-facing messages
const (
	MsgInvalidInput   = "Please enter a valid card number"
	MsgOutOfRange     = "Invalid card number. Please enter a number between 1 and %d"
	MsgGotoFailed     = "Error navigating to card"
	MsgNavigateFailed = "Error loading card"
	actionGoto        = "goto"
)

// CardClient fetches cards from the deck service
type CardClient interface {
	Navigate(ctx context.Context, direction deckclient.Direction) (*types.CardSnapshot, error)
	GoTo(ctx context.Context, cardNumber int) (*types.GotoResponse, error)
}

// Recorder receives every card that was successfully loaded
type Recorder interface {
	Record(action string, card *types.CardSnapshot) error
}

// CardMsg is the completion of one navigation request
type CardMsg struct {
	Seq      uint64
	Action   string
	Card     *types.CardSnapshot
	Goto     *types.GotoResponse
	Err      error
	Duration time.Duration
}

// Navigator turns navigation intents into deck service requests and applies
// their completions to the controller. Requests run as tea.Cmds; Handle must
// be called from Update.
type Navigator struct {
	client     CardClient
	controller *viewstate.Controller
	logger     *zap.Logger
	recorder   Recorder

	showNavigationErrors bool

	issued  uint64
	applied uint64
}

// Option configures a Navigator
type Option func(*Navigator)

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithRecorder logs every successful load to r
func WithRecorder(r Recorder) Option {
	return func(n *Navigator) {
		n.recorder = r
	}
}

// WithNavigationErrors shows a banner when next/previous/first/last fail
func WithNavigationErrors(show bool) Option {
	return func(n *Navigator) {
		n.showNavigationErrors = show
	}
}

// New creates a Navigator driving controller
func New(client CardClient, controller *viewstate.Controller, opts ...Option) *Navigator {
	n := &Navigator{
		client:     client,
		controller: controller,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Next requests the card after the current one; the service wraps at the end.
func (n *Navigator) Next() tea.Cmd { return n.navigate(deckclient.DirectionNext) }

// Previous requests the card before the current one; the service wraps at the start.
func (n *Navigator) Previous() tea.Cmd { return n.navigate(deckclient.DirectionPrevious) }

// First requests the first card of the deck.
func (n *Navigator) First() tea.Cmd { return n.navigate(deckclient.DirectionFirst) }

// Last requests the last card of the deck.
func (n *Navigator) Last() tea.Cmd { return n.navigate(deckclient.DirectionLast) }

// GoTo validates raw as a 1-based card number and requests that card.
// Invalid input shows the banner and issues no request (nil command).
func (n *Navigator) GoTo(raw string) tea.Cmd {
	cardNumber, ok := parseCardNumber(raw)
	if !ok || cardNumber < 1 {
		n.controller.ShowError(MsgInvalidInput)
		return nil
	}

	seq := n.nextSeq()
	client := n.client
	return func() tea.Msg {
		start := time.Now()
		resp, err := client.GoTo(context.Background(), cardNumber)
		return CardMsg{
			Seq:      seq,
			Action:   actionGoto,
			Goto:     resp,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// parseCardNumber reads an optional sign and the leading run of digits after
// trimming, ignoring anything that follows ("12abc" is 12, "3.5" is 3).
func parseCardNumber(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	value, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}

// InFlight reports whether a request has been issued but not yet applied
func (n *Navigator) InFlight() bool {
	return n.issued > n.applied
}

// Handle applies a completion to the controller. Completions older than the
// last applied one are discarded; the return value reports whether msg was
// applied.
func (n *Navigator) Handle(msg CardMsg) bool {
	if msg.Seq <= n.applied {
		n.logger.Debug("discarding stale navigation response",
			zap.String("action", msg.Action),
			zap.Uint64("seq", msg.Seq),
			zap.Uint64("applied", n.applied),
		)
		return false
	}
	n.applied = msg.Seq

	if msg.Action == actionGoto {
		n.handleGoto(msg)
	} else {
		n.handleNavigate(msg)
	}
	return true
}

func (n *Navigator) navigate(direction deckclient.Direction) tea.Cmd {
	seq := n.nextSeq()
	client := n.client
	return func() tea.Msg {
		start := time.Now()
		card, err := client.Navigate(context.Background(), direction)
		return CardMsg{
			Seq:      seq,
			Action:   string(direction),
			Card:     card,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

func (n *Navigator) handleNavigate(msg CardMsg) {
	if msg.Err != nil || msg.Card == nil {
		n.logger.Error("failed to load card",
			zap.String("action", msg.Action),
			zap.Error(msg.Err),
		)
		if n.showNavigationErrors {
			n.controller.ShowError(MsgNavigateFailed)
		}
		return
	}

	n.apply(msg.Action, msg.Card, msg.Duration)
}

func (n *Navigator) handleGoto(msg CardMsg) {
	if msg.Err != nil || msg.Goto == nil {
		n.logger.Error("failed to navigate to card", zap.Error(msg.Err))
		n.controller.ShowError(MsgGotoFailed)
		return
	}

	if msg.Goto.Error {
		n.controller.ShowError(fmt.Sprintf(MsgOutOfRange, msg.Goto.Total))
		return
	}

	card := msg.Goto.CardSnapshot
	n.apply(actionGoto, &card, msg.Duration)
}

func (n *Navigator) apply(action string, card *types.CardSnapshot, took time.Duration) {
	// The controller already logs unknown persons; the card is loaded regardless
	_ = n.controller.LoadCard(card)
	n.controller.FaceFront()
	n.controller.ClearError()

	n.logger.Debug("card loaded",
		zap.String("action", action),
		zap.Int("position", card.Position),
		zap.Int("total", card.Total),
		zap.Duration("took", took),
	)

	if n.recorder == nil || card.Total == 0 {
		return
	}
	if err := n.recorder.Record(action, card); err != nil {
		n.logger.Warn("failed to record study log entry", zap.Error(err))
	}
}

func (n *Navigator) nextSeq() uint64 {
	n.issued++
	return n.issued
}

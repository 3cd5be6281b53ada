// Package chat implements the mentor conversation view: an optimistic
// transcript with at most one outstanding reply.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/responder"
	"github.com/jonathan/career-mentor/internal/types"
)

// Flow errors
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is already pending")
	ErrClosed       = errors.New("chat view is closed")
)

// State is the input state of the view.
type State string

// View states
const (
	StateIdle     State = "idle"
	StateAwaiting State = "awaiting_response"
)

// Options configures a Flow.
type Options struct {
	Greeting       string
	QuickQuestions []string
	Logger         *slog.Logger
	Now            func() time.Time
}

// Snapshot is a consistent copy of the view state.
type Snapshot struct {
	Messages  []types.ChatMessage
	State     State
	LastError error
}

// Outcome is the result of one responder call.
type Outcome struct {
	Reply *types.ChatMessage
	Err   error
}

// Pending tracks a message whose reply has not arrived yet.
type Pending struct {
	Message types.ChatMessage

	done    chan struct{}
	outcome Outcome
}

// Done is closed once the reply has been applied, or dropped.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Outcome returns the result. Only meaningful after Done is closed.
func (p *Pending) Outcome() Outcome {
	<-p.done
	return p.outcome
}

// Flow is one chat view. Safe for concurrent use.
type Flow struct {
	responder      responder.ChatResponder
	quickQuestions []string
	logger         *slog.Logger
	now            func() time.Time

	// inflight admits one responder call at a time.
	inflight *semaphore.Weighted
	ctx      context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	messages []types.ChatMessage
	awaiting bool
	lastErr  error
	closed   bool
}

// New creates a flow whose transcript starts with the mentor greeting.
func New(r responder.ChatResponder, opts Options) *Flow {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Flow{
		responder:      r,
		quickQuestions: slices.Clone(opts.QuickQuestions),
		logger:         opts.Logger,
		now:            opts.Now,
		inflight:       semaphore.NewWeighted(1),
		ctx:            ctx,
		cancel:         cancel,
		messages:       []types.ChatMessage{types.NewMentorMessage(opts.Greeting, opts.Now())},
	}
}

// Send appends the user's message and asks the responder for a reply in
// the background. Blank text and sends while a reply is pending are
// rejected without touching the transcript.
func (f *Flow) Send(text string) (*Pending, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if !f.inflight.TryAcquire(1) {
		return nil, ErrBusy
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		f.inflight.Release(1)
		return nil, ErrClosed
	}
	msg := types.NewUserMessage(text, f.now())
	f.messages = append(f.messages, msg)
	transcript := slices.Clone(f.messages)
	f.awaiting = true
	f.lastErr = nil
	f.mu.Unlock()

	observability.ChatMessagesSent.Inc()

	p := &Pending{Message: msg, done: make(chan struct{})}
	go f.await(p, transcript)
	return p, nil
}

func (f *Flow) await(p *Pending, transcript []types.ChatMessage) {
	defer close(p.done)
	defer f.inflight.Release(1)

	start := time.Now()
	reply, err := f.responder.Reply(f.ctx, transcript)
	observability.ChatReplySeconds.Observe(time.Since(start).Seconds())
	observability.ChatReplies.WithLabelValues(observability.Outcome(string(responder.KindOf(err)))).Inc()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.awaiting = false
	switch {
	case f.closed:
		p.outcome = Outcome{Err: ErrClosed}
	case err != nil:
		f.lastErr = err
		p.outcome = Outcome{Err: err}
		f.logger.Warn("mentor reply failed", "error", err, "kind", responder.KindOf(err))
	default:
		m := types.NewMentorMessage(reply, f.now())
		f.messages = append(f.messages, m)
		p.outcome = Outcome{Reply: &m}
	}
}

// Snapshot returns a copy of the transcript and state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := StateIdle
	if f.awaiting {
		state = StateAwaiting
	}
	return Snapshot{
		Messages:  slices.Clone(f.messages),
		State:     state,
		LastError: f.lastErr,
	}
}

// Messages returns a copy of the transcript.
func (f *Flow) Messages() []types.ChatMessage {
	return f.Snapshot().Messages
}

// LastError returns the failure of the most recent reply, if any.
func (f *Flow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// QuickQuestions returns the suggested prompts.
func (f *Flow) QuickQuestions() []string {
	return slices.Clone(f.quickQuestions)
}

// Wait blocks until no reply is pending or ctx is done.
func (f *Flow) Wait(ctx context.Context) error {
	if err := f.inflight.Acquire(ctx, 1); err != nil {
		return err
	}
	f.inflight.Release(1)
	return nil
}

// Close cancels any pending reply. A reply arriving afterwards is dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cancel()
}

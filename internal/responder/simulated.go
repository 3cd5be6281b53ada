package responder

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonathan/career-mentor/internal/types"
)

// Default latencies of the simulated backend.
const (
	DefaultChatLatency   = 1500 * time.Millisecond
	DefaultUploadLatency = 2000 * time.Millisecond
)

// Picker chooses an index in [0, n).
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

// Pick calls f.
func (f PickerFunc) Pick(n int) int { return f(n) }

// RandPicker picks uniformly from a seedable PCG source. Safe for concurrent use.
type RandPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandPicker creates a picker. A zero seed draws a random one.
func NewRandPicker(seed uint64) *RandPicker {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns a uniformly chosen index in [0, n).
func (p *RandPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// SimulatedChat waits a fixed latency and then answers with a reply drawn
// from a fixed pool, ignoring the conversation content.
type SimulatedChat struct {
	latency time.Duration
	replies []string
	picker  Picker
}

// NewSimulatedChat creates a simulated chat responder.
func NewSimulatedChat(replies []string, latency time.Duration, picker Picker) *SimulatedChat {
	if picker == nil {
		picker = NewRandPicker(0)
	}
	return &SimulatedChat{
		latency: latency,
		replies: append([]string(nil), replies...),
		picker:  picker,
	}
}

// Reply implements ChatResponder.
func (s *SimulatedChat) Reply(ctx context.Context, _ []types.ChatMessage) (string, error) {
	const op = "chat reply"
	if err := sleep(ctx, s.latency); err != nil {
		return "", classify(op, err)
	}
	if len(s.replies) == 0 {
		return "", Remote(op, errors.New("reply pool is empty"))
	}
	i := s.picker.Pick(len(s.replies))
	if i < 0 || i >= len(s.replies) {
		i = 0
	}
	return s.replies[i], nil
}

// SimulatedUpload waits a fixed latency and then always succeeds.
type SimulatedUpload struct {
	latency time.Duration
}

// NewSimulatedUpload creates a simulated upload responder.
func NewSimulatedUpload(latency time.Duration) *SimulatedUpload {
	return &SimulatedUpload{latency: latency}
}

// Upload implements UploadResponder.
func (s *SimulatedUpload) Upload(ctx context.Context, _ types.FileInfo) error {
	return classify("resume upload", sleep(ctx, s.latency))
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

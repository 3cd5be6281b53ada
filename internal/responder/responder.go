// Package responder provides the asynchronous collaborators behind the chat
// and upload flows.
//
// The shipped implementations simulate a backend: they wait a fixed latency
// and then succeed. Timeout and retry decorators give every implementation
// the failure model a real network client needs.
package responder

import (
	"context"
	"time"

	"github.com/jonathan/career-mentor/internal/types"
)

// ChatResponder produces the mentor's reply to a conversation.
type ChatResponder interface {
	Reply(ctx context.Context, transcript []types.ChatMessage) (string, error)
}

// UploadResponder accepts an uploaded resume.
type UploadResponder interface {
	Upload(ctx context.Context, file types.FileInfo) error
}

// ChatFunc adapts a function to ChatResponder.
type ChatFunc func(ctx context.Context, transcript []types.ChatMessage) (string, error)

// Reply calls f.
func (f ChatFunc) Reply(ctx context.Context, transcript []types.ChatMessage) (string, error) {
	return f(ctx, transcript)
}

// UploadFunc adapts a function to UploadResponder.
type UploadFunc func(ctx context.Context, file types.FileInfo) error

// Upload calls f.
func (f UploadFunc) Upload(ctx context.Context, file types.FileInfo) error {
	return f(ctx, file)
}

// Immediate returns a chat responder that answers with reply without waiting.
func Immediate(reply string) ChatResponder {
	return ChatFunc(func(context.Context, []types.ChatMessage) (string, error) {
		return reply, nil
	})
}

// ImmediateUpload returns an upload responder that succeeds without waiting.
func ImmediateUpload() UploadResponder {
	return UploadFunc(func(context.Context, types.FileInfo) error { return nil })
}

// Options configures a responder stack.
type Options struct {
	Latency time.Duration
	Timeout time.Duration
	Retry   RetryPolicy
	Seed    uint64
}

// NewChat builds the simulated chat responder wrapped in retry and timeout.
// Each attempt is bounded by Timeout.
func NewChat(replies []string, opts Options) ChatResponder {
	var r ChatResponder = NewSimulatedChat(replies, opts.Latency, NewRandPicker(opts.Seed))
	r = ChatWithTimeout(r, opts.Timeout)
	return ChatWithRetry(r, opts.Retry)
}

// NewUpload builds the simulated upload responder wrapped in retry and timeout.
func NewUpload(opts Options) UploadResponder {
	var r UploadResponder = NewSimulatedUpload(opts.Latency)
	r = UploadWithTimeout(r, opts.Timeout)
	return UploadWithRetry(r, opts.Retry)
}

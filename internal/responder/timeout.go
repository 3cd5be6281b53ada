package responder

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/career-mentor/internal/types"
)

// withTimeout runs fn under a deadline of d. The call returns when the
// deadline passes even if fn ignores its context. A non-positive d only
// classifies the error.
func withTimeout[T any](ctx context.Context, op string, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if d <= 0 {
		v, err := fn(ctx)
		if err != nil {
			return zero, classify(op, err)
		}
		return v, nil
	}

	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(tctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return zero, timeoutError(ctx, tctx, op, r.err)
		}
		return r.v, nil
	case <-tctx.Done():
		return zero, timeoutError(ctx, tctx, op, tctx.Err())
	}
}

// timeoutError attributes a failure to the parent context or to the local
// deadline.
func timeoutError(parent, tctx context.Context, op string, err error) error {
	if parent.Err() != nil {
		return &Error{Op: op, Kind: KindCanceled, Err: err}
	}
	if errors.Is(tctx.Err(), context.DeadlineExceeded) {
		return &Error{Op: op, Kind: KindTimeout, Err: err}
	}
	return classify(op, err)
}

type chatTimeout struct {
	next ChatResponder
	d    time.Duration
}

// ChatWithTimeout bounds every Reply of next by d.
func ChatWithTimeout(next ChatResponder, d time.Duration) ChatResponder {
	return &chatTimeout{next: next, d: d}
}

func (t *chatTimeout) Reply(ctx context.Context, transcript []types.ChatMessage) (string, error) {
	return withTimeout(ctx, "chat reply", t.d, func(ctx context.Context) (string, error) {
		return t.next.Reply(ctx, transcript)
	})
}

type uploadTimeout struct {
	next UploadResponder
	d    time.Duration
}

// UploadWithTimeout bounds every Upload of next by d.
func UploadWithTimeout(next UploadResponder, d time.Duration) UploadResponder {
	return &uploadTimeout{next: next, d: d}
}

func (t *uploadTimeout) Upload(ctx context.Context, file types.FileInfo) error {
	_, err := withTimeout(ctx, "resume upload", t.d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, t.next.Upload(ctx, file)
	})
	return err
}

package responder

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/career-mentor/internal/types"
)

// RetryPolicy controls how remote failures are retried. Timeouts and
// cancellations are never retried.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// retry calls fn up to attempts times with linear backoff, stopping early on
// success, on a non-remote failure, or when ctx is done.
func retry[T any](ctx context.Context, policy RetryPolicy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := max(policy.Attempts, 1)
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if KindOf(err) != KindRemote || i == attempts-1 {
			break
		}
		wait := policy.Backoff * time.Duration(i+1)
		if err := sleep(ctx, wait); err != nil {
			return zero, classify("retry", err)
		}
	}
	if attempts == 1 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

type chatRetry struct {
	next   ChatResponder
	policy RetryPolicy
}

// ChatWithRetry retries remote failures of next according to policy.
func ChatWithRetry(next ChatResponder, policy RetryPolicy) ChatResponder {
	if policy.Attempts <= 1 {
		return next
	}
	return &chatRetry{next: next, policy: policy}
}

func (r *chatRetry) Reply(ctx context.Context, transcript []types.ChatMessage) (string, error) {
	return retry(ctx, r.policy, func() (string, error) {
		return r.next.Reply(ctx, transcript)
	})
}

type uploadRetry struct {
	next   UploadResponder
	policy RetryPolicy
}

// UploadWithRetry retries remote failures of next according to policy.
func UploadWithRetry(next UploadResponder, policy RetryPolicy) UploadResponder {
	if policy.Attempts <= 1 {
		return next
	}
	return &uploadRetry{next: next, policy: policy}
}

func (r *uploadRetry) Upload(ctx context.Context, file types.FileInfo) error {
	_, err := retry(ctx, r.policy, func() (struct{}, error) {
		return struct{}{}, r.next.Upload(ctx, file)
	})
	return err
}

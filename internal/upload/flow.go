// Package upload implements the resume upload view: file selection with
// validation, a preview, and a simulated upload.
package upload

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/responder"
	"github.com/jonathan/career-mentor/internal/types"
)

// Flow errors
var (
	ErrNoSession    = errors.New("no file selected")
	ErrInvalidState = errors.New("upload already started")
	ErrClosed       = errors.New("upload view is closed")
)

// Options configures a Flow.
type Options struct {
	Limits      Limits
	PreviewText string
	Logger      *slog.Logger
}

// Snapshot is a consistent copy of the view state. Session is nil before a
// file has been selected.
type Snapshot struct {
	Session   *types.UploadSession
	LastError error
}

// Flow is one upload view. Safe for concurrent use.
type Flow struct {
	responder responder.UploadResponder
	limits    Limits
	preview   string
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	session *types.UploadSession
	lastErr error
	closed  bool
	// gen identifies the current session; results from older ones are dropped.
	gen          uint64
	cancelUpload context.CancelFunc
	done         chan struct{}
}

// New creates a flow with no session.
func New(r responder.UploadResponder, opts Options) *Flow {
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Flow{
		responder: r,
		limits:    opts.Limits,
		preview:   CleanPreview(opts.PreviewText),
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Select validates file and, when it passes, starts a fresh session for it.
// A rejected file leaves the flow exactly as it was.
func (f *Flow) Select(file types.FileInfo) (types.UploadSession, error) {
	if err := Validate(file, f.limits); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			observability.UploadsRejected.WithLabelValues(ve.Reason.Error()).Inc()
		}
		return types.UploadSession{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return types.UploadSession{}, ErrClosed
	}
	f.abortLocked()
	f.session = &types.UploadSession{
		File:        file,
		PreviewText: f.preview,
		Status:      types.UploadIdle,
	}
	f.lastErr = nil
	return *f.session, nil
}

// Upload sends the selected file to the responder in the background.
// Only an idle session can be uploaded.
func (f *Flow) Upload() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.closed:
		return ErrClosed
	case f.session == nil:
		return ErrNoSession
	case f.session.Status != types.UploadIdle:
		return ErrInvalidState
	}

	f.session.Status = types.UploadUploading
	f.lastErr = nil

	ctx, cancel := context.WithCancel(f.ctx)
	done := make(chan struct{})
	f.cancelUpload = cancel
	f.done = done

	go f.run(ctx, f.gen, f.session.File, done)
	return nil
}

func (f *Flow) run(ctx context.Context, gen uint64, file types.FileInfo, done chan struct{}) {
	defer close(done)

	err := f.responder.Upload(ctx, file)
	observability.Uploads.WithLabelValues(observability.Outcome(string(responder.KindOf(err)))).Inc()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.gen || f.session == nil {
		return
	}
	f.cancelUpload()
	f.cancelUpload = nil

	if err != nil {
		f.session.Status = types.UploadError
		f.lastErr = err
		f.logger.Warn("resume upload failed", "file", file.Name, "error", err, "kind", responder.KindOf(err))
		return
	}
	f.session.Status = types.UploadSuccess
}

// Reset discards the session and cancels an upload in progress.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.abortLocked()
	f.session = nil
	f.lastErr = nil
}

// abortLocked invalidates the current session's in-flight upload.
func (f *Flow) abortLocked() {
	f.gen++
	if f.cancelUpload != nil {
		f.cancelUpload()
		f.cancelUpload = nil
	}
}

// Snapshot returns a copy of the view state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{LastError: f.lastErr}
	if f.session != nil {
		s := *f.session
		snap.Session = &s
	}
	return snap
}

// Status returns the session status, or "" before a file is selected.
func (f *Flow) Status() types.UploadStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return ""
	}
	return f.session.Status
}

// Limits returns the selection limits.
func (f *Flow) Limits() Limits {
	return f.limits
}

// Wait blocks until the most recent upload has finished or ctx is done.
func (f *Flow) Wait(ctx context.Context) error {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any upload in progress. Later results are dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.abortLocked()
	f.mu.Unlock()
	f.cancel()
}

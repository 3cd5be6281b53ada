package upload

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-mentor/internal/types"
)

// Selection limits
const (
	DefaultMaxBytes int64 = 5 * 1024 * 1024
	DefaultMimeType       = "application/pdf"
	pdfExtension          = ".pdf"
)

// Validation failures, matched with errors.Is through *ValidationError.
var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
)

// ValidationError reports why a selected file was rejected. Message is
// suitable for showing to the user.
type ValidationError struct {
	File    types.FileInfo
	Reason  error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Limits bounds what Select accepts. An empty Extension is derived from
// MimeType through the system MIME table.
type Limits struct {
	MaxBytes  int64
	MimeType  string
	Extension string
}

// DefaultLimits accepts PDFs up to 5 MiB.
func DefaultLimits() Limits {
	return Limits{MaxBytes: DefaultMaxBytes, MimeType: DefaultMimeType, Extension: pdfExtension}
}

// extensions returns the file extensions allowed for the configured type.
// nil means the MIME type alone decides.
func (l Limits) extensions() []string {
	if l.Extension != "" {
		return []string{l.Extension}
	}
	exts, err := mime.ExtensionsByType(mediaType(l.MimeType))
	if err != nil {
		return nil
	}
	return exts
}

// typeLabel names the allowed type in user-facing messages, e.g. "PDF".
func (l Limits) typeLabel() string {
	if exts := l.extensions(); len(exts) > 0 {
		return strings.ToUpper(strings.TrimPrefix(exts[0], "."))
	}
	_, sub, _ := strings.Cut(mediaType(l.MimeType), "/")
	return strings.ToUpper(sub)
}

// Validate checks a file against the limits. The type is checked before
// the size.
func Validate(file types.FileInfo, limits Limits) error {
	if !strings.EqualFold(mediaType(file.MimeType), mediaType(limits.MimeType)) || !hasAllowedExtension(file.Name, limits.extensions()) {
		return &ValidationError{File: file, Reason: ErrInvalidFileType, Message: "Please upload a " + limits.typeLabel() + " file only"}
	}
	if file.SizeBytes < 0 || file.SizeBytes > limits.MaxBytes {
		return &ValidationError{File: file, Reason: ErrFileTooLarge, Message: "File size must be less than " + humanSize(limits.MaxBytes)}
	}
	return nil
}

// mediaType strips parameters such as "; charset=binary".
func mediaType(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	return strings.TrimSpace(base)
}

// hasAllowedExtension accepts names without an extension, since the MIME
// type already decided.
func hasAllowedExtension(name string, allowed []string) bool {
	ext := filepath.Ext(name)
	if ext == "" || allowed == nil {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

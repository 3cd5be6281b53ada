package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/types"
	"github.com/jonathan/career-mentor/internal/upload"
)

// multipartField is the form field carrying the resume.
const multipartField = "file"

// multipartOverhead is the room a multipart body gets beyond the file
// limit for boundaries, headers and small form fields.
const multipartOverhead = 64 << 10

// UploadLimits is the JSON form of upload.Limits.
type UploadLimits struct {
	MaxBytes  int64  `json:"max_bytes"`
	MimeType  string `json:"mime_type"`
	Extension string `json:"extension,omitempty"`
}

// UploadResponse represents an upload view
type UploadResponse struct {
	UploadID  uuid.UUID            `json:"upload_id"`
	Session   *types.UploadSession `json:"session"`
	Limits    UploadLimits         `json:"limits"`
	LastError *ErrorInfo           `json:"last_error"`
}

func uploadResponse(id uuid.UUID, flow *upload.Flow) UploadResponse {
	snap := flow.Snapshot()
	limits := flow.Limits()
	return UploadResponse{
		UploadID:  id,
		Session:   snap.Session,
		Limits:    UploadLimits{MaxBytes: limits.MaxBytes, MimeType: limits.MimeType, Extension: limits.Extension},
		LastError: errorInfo(snap.LastError),
	}
}

func (s *Server) uploadLimits() upload.Limits {
	return upload.Limits{
		MaxBytes:  s.cfg.Upload.MaxBytes,
		MimeType:  s.cfg.Upload.MimeType,
		Extension: s.cfg.Upload.Extension,
	}
}

// uploadFlow resolves the {id} path value. It writes the error response
// itself and returns nil when the view does not exist.
func (s *Server) uploadFlow(w http.ResponseWriter, r *http.Request) (uuid.UUID, *upload.Flow) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid upload ID format")
		return uuid.Nil, nil
	}
	flow, ok := s.uploads.Get(id)
	if !ok {
		s.errResponse(w, &ErrViewNotFound{Kind: "upload", ID: idStr})
		return id, nil
	}
	return id, flow
}

func (s *Server) handleCreateUpload(w http.ResponseWriter, _ *http.Request) {
	flow := upload.New(s.newUploadResponder(), upload.Options{
		Limits:      s.uploadLimits(),
		PreviewText: s.catalog.ResumePreview(),
		Logger:      s.logger.With("view", "upload"),
	})
	id := s.uploads.Create(flow)
	s.jsonResponse(w, http.StatusCreated, uploadResponse(id, flow))
}

func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	id, flow := s.uploadFlow(w, r)
	if flow == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, uploadResponse(id, flow))
}

func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid upload ID format")
		return
	}
	if !s.uploads.Delete(id) {
		s.errResponse(w, &ErrViewNotFound{Kind: "upload", ID: idStr})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectFile accepts either a multipart form with a "file" part or a
// JSON FileInfo describing the file.
func (s *Server) handleSelectFile(w http.ResponseWriter, r *http.Request) {
	id, flow := s.uploadFlow(w, r)
	if flow == nil {
		return
	}

	var file types.FileInfo
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		maxBytes := flow.Limits().MaxBytes
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		info, err := readMultipartFile(r, maxBytes)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid multipart body: "+err.Error())
			return
		}
		file = info
	} else if !s.decodeJSON(w, r, &file) {
		return
	}

	if _, err := flow.Select(file); err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, uploadResponse(id, flow))
}

// readMultipartFile describes the "file" part without keeping its bytes.
// Counting stops one byte past maxBytes, which is enough to reject it.
func readMultipartFile(r *http.Request, maxBytes int64) (types.FileInfo, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return types.FileInfo{}, err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return types.FileInfo{}, fmt.Errorf("missing %q part", multipartField)
		}
		if err != nil {
			return types.FileInfo{}, err
		}
		if part.FormName() != multipartField {
			part.Close()
			continue
		}

		n, err := io.Copy(io.Discard, io.LimitReader(part, maxBytes+1))
		part.Close()
		if err != nil {
			return types.FileInfo{}, err
		}

		mimeType := part.Header.Get("Content-Type")
		if mimeType == "" || strings.HasPrefix(mimeType, "application/octet-stream") {
			mimeType = mime.TypeByExtension(filepath.Ext(part.FileName()))
		}
		return types.FileInfo{Name: part.FileName(), SizeBytes: n, MimeType: mimeType}, nil
	}
}

// handleSubmitUpload starts the upload; poll GET /uploads/{id} for the result.
func (s *Server) handleSubmitUpload(w http.ResponseWriter, r *http.Request) {
	id, flow := s.uploadFlow(w, r)
	if flow == nil {
		return
	}
	if err := flow.Upload(); err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, uploadResponse(id, flow))
}

func (s *Server) handleResetUpload(w http.ResponseWriter, r *http.Request) {
	id, flow := s.uploadFlow(w, r)
	if flow == nil {
		return
	}
	flow.Reset()
	s.jsonResponse(w, http.StatusOK, uploadResponse(id, flow))
}

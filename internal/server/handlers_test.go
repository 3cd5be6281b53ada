package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-mentor/internal/chat"
	"github.com/jonathan/career-mentor/internal/responder"
	"github.com/jonathan/career-mentor/internal/types"
)

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// --- admin ---

func TestAdminStats(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/admin/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[types.DashboardStats](t, w)
	assert.Equal(t, 1247, stats.TotalUsers)
	assert.Equal(t, 892, stats.ResumesUploaded)
}

func TestAdminLogs(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		target  string
		wantIDs []string
	}{
		{name: "no filter", target: "/admin/logs", wantIDs: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "query is case-insensitive", target: "/admin/logs?q=RESUME", wantIDs: []string{"1", "4", "5"}},
		{name: "status only", target: "/admin/logs?status=error", wantIDs: []string{"4"}},
		{name: "query and status", target: "/admin/logs?q=chat&status=success", wantIDs: []string{"2", "6"}},
		{name: "status is normalized", target: "/admin/logs?status=Pending", wantIDs: []string{"5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[LogsResponse](t, w)
			assert.Equal(t, len(tt.wantIDs), resp.Count)
			assert.Equal(t, 6, resp.Total)
			ids := make([]string, 0, len(resp.Logs))
			for _, e := range resp.Logs {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestAdminLogs_EmptyResult(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/admin/logs?q=quantum", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logs":[]`)
	assert.Equal(t, 0, decode[LogsResponse](t, w).Count)
}

func TestAdminLogs_UnknownStatus(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/admin/logs?status=failed", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "Status must be one of")
}

func TestAdminExport(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/admin/logs/export?status=error", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="admin_logs.csv"`, w.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	// The filter does not narrow the export unless scope=filtered.
	require.Len(t, records, 7)
	assert.Equal(t, []string{"User", "Action", "Timestamp", "Details", "Status"}, records[0])
	assert.Equal(t, "john.doe@email.com", records[1][0])
}

func TestAdminExport_Filtered(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/admin/logs/export?status=error&scope=filtered", nil)

	require.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"sarah.brown@email.com", "Resume Upload", "2024-01-15T08:20:00.000Z", "Upload failed - File size exceeds 5MB limit", "error"}, records[1])
}

func TestAdminExport_BadScope(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/admin/logs/export?scope=some", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- suggestions ---

func TestSuggestions(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[SuggestionsResponse](t, w)
	assert.Equal(t, 6, list.Count)
	assert.Len(t, list.Suggestions, 6)

	w = do(t, s, http.MethodGet, "/suggestions/ml-engineer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ml-engineer", decode[types.CareerSuggestion](t, w).ID)

	w = do(t, s, http.MethodGet, "/suggestions/astronaut", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestions_Selected(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantSelected string
	}{
		{name: "none", target: "/suggestions", wantStatus: http.StatusOK},
		{name: "known id", target: "/suggestions?selected=ml-engineer", wantStatus: http.StatusOK, wantSelected: "ml-engineer"},
		{name: "unknown id", target: "/suggestions?selected=astronaut", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "Suggestion not found", decode[map[string]string](t, w)["error"])
				return
			}
			resp := decode[SuggestionsResponse](t, w)
			assert.Equal(t, tt.wantSelected, resp.Selected)
			assert.Len(t, resp.Suggestions, 6)
		})
	}
}

// --- chat ---

func createChat(t *testing.T, s *Server) (uuid.UUID, *chat.Flow) {
	t.Helper()
	w := do(t, s, http.MethodPost, "/chat/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[ChatResponse](t, w)
	flow, ok := s.chats.Get(resp.SessionID)
	require.True(t, ok)
	return resp.SessionID, flow
}

func TestCreateChat(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/chat/sessions", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[ChatResponse](t, w)
	assert.Equal(t, chat.StateIdle, resp.State)
	require.Len(t, resp.Messages, 1)
	assert.False(t, resp.Messages[0].IsFromUser)
	assert.Contains(t, resp.Messages[0].Text, "AI Career Mentor")
	assert.NotEmpty(t, resp.QuickQuestions)
	assert.Nil(t, resp.LastError)
}

func TestSendMessage(t *testing.T) {
	s := newTestServer(t, nil)
	id, flow := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages", map[string]string{"text": "How do I start?"})

	require.Equal(t, http.StatusAccepted, w.Code)
	sent := decode[SendResponse](t, w)
	assert.Equal(t, "How do I start?", sent.Message.Text)
	assert.True(t, sent.Message.IsFromUser)

	require.NoError(t, flow.Wait(waitCtx(t)))

	w = do(t, s, http.MethodGet, "/chat/sessions/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ChatResponse](t, w)
	assert.Equal(t, chat.StateIdle, resp.State)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, testReply, resp.Messages[2].Text)
	assert.False(t, resp.Messages[2].IsFromUser)
}

func TestSendMessage_Empty(t *testing.T) {
	s := newTestServer(t, nil)
	id, flow := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages", map[string]string{"text": "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, flow.Messages(), 1)
}

func TestSendMessage_InvalidJSON(t *testing.T) {
	s := newTestServer(t, nil)
	id, _ := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "Invalid request body")
}

func TestSendMessage_Busy(t *testing.T) {
	release := make(chan struct{})
	blocking := responder.ChatFunc(func(ctx context.Context, _ []types.ChatMessage) (string, error) {
		select {
		case <-release:
			return "done", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	s := newTestServer(t, nil, WithChatResponder(blocking))
	id, flow := createChat(t, s)
	target := "/chat/sessions/" + id.String() + "/messages"

	require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, target, map[string]string{"text": "first"}).Code)

	w := do(t, s, http.MethodGet, "/chat/sessions/"+id.String(), nil)
	assert.Equal(t, chat.StateAwaiting, decode[ChatResponse](t, w).State)

	w = do(t, s, http.MethodPost, target, map[string]string{"text": "second"})
	assert.Equal(t, http.StatusConflict, w.Code)

	close(release)
	require.NoError(t, flow.Wait(waitCtx(t)))
	assert.Len(t, flow.Messages(), 3)
}

func TestSendMessage_ReplyFailure(t *testing.T) {
	failing := responder.ChatFunc(func(context.Context, []types.ChatMessage) (string, error) {
		return "", responder.Remote("chat reply", errors.New("mentor unavailable"))
	})
	s := newTestServer(t, nil, WithChatResponder(failing))
	id, flow := createChat(t, s)

	require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages", map[string]string{"text": "hi"}).Code)
	require.NoError(t, flow.Wait(waitCtx(t)))

	resp := decode[ChatResponse](t, do(t, s, http.MethodGet, "/chat/sessions/"+id.String(), nil))
	require.NotNil(t, resp.LastError)
	assert.Equal(t, "remote", resp.LastError.Kind)
	assert.Len(t, resp.Messages, 2)
}

func TestChat_UnknownAndInvalidIDs(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/chat/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/chat/sessions/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/chat/sessions/"+uuid.NewString()+"/messages", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteChat(t *testing.T) {
	s := newTestServer(t, nil)
	id, _ := createChat(t, s)
	target := "/chat/sessions/" + id.String()

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, target, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, target, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, target, nil).Code)
}

func TestQuickQuestions(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/chat/quick-questions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string][]string](t, w)["questions"], "What skills do I need for ML engineering?")
}

func TestSendMessageStream(t *testing.T) {
	s := newTestServer(t, nil)
	id, _ := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages/stream", map[string]string{"text": "Which roles pay best?"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	userAt := strings.Index(body, "Which roles pay best?")
	typingAt := strings.Index(body, "event: typing")
	replyAt := strings.Index(body, testReply)
	completeAt := strings.Index(body, "event: complete")
	require.True(t, userAt >= 0 && typingAt >= 0 && replyAt >= 0 && completeAt >= 0, body)
	assert.Less(t, userAt, typingAt)
	assert.Less(t, typingAt, replyAt)
	assert.Less(t, replyAt, completeAt)
	assert.Contains(t, body, `"state":"idle"`)
}

func TestSendMessageStream_Error(t *testing.T) {
	failing := responder.ChatFunc(func(context.Context, []types.ChatMessage) (string, error) {
		return "", responder.Remote("chat reply", errors.New("mentor unavailable"))
	})
	s := newTestServer(t, nil, WithChatResponder(failing))
	id, _ := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages/stream", map[string]string{"text": "hi"})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, `"kind":"remote"`)
	assert.Contains(t, body, "event: complete")
}

func TestSendMessageStream_Empty(t *testing.T) {
	s := newTestServer(t, nil)
	id, _ := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+id.String()+"/messages/stream", map[string]string{"text": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

// --- uploads ---

func createUpload(t *testing.T, s *Server) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/uploads", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[UploadResponse](t, w)
	assert.Nil(t, resp.Session)
	assert.Equal(t, s.cfg.Upload.MaxBytes, resp.Limits.MaxBytes)
	return "/uploads/" + resp.UploadID.String()
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	w := do(t, s, http.MethodPost, base+"/file", types.FileInfo{Name: "resume.pdf", SizeBytes: 6 * 1024 * 1024, MimeType: "application/pdf"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File size must be less than 5MB", decode[map[string]string](t, w)["error"])

	resp := decode[UploadResponse](t, do(t, s, http.MethodGet, base, nil))
	assert.Nil(t, resp.Session)
}

func TestUpload_RejectsWrongType(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	w := do(t, s, http.MethodPost, base+"/file", types.FileInfo{Name: "resume.docx", SizeBytes: 1024, MimeType: "application/msword"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please upload a PDF file only", decode[map[string]string](t, w)["error"])
}

func TestUpload_SubmitWithoutFile(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	w := do(t, s, http.MethodPost, base+"/submit", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpload_HappyPath(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	w := do(t, s, http.MethodPost, base+"/file", types.FileInfo{Name: "resume.pdf", SizeBytes: 2_400_000, MimeType: "application/pdf"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[UploadResponse](t, w)
	require.NotNil(t, resp.Session)
	assert.Equal(t, types.UploadIdle, resp.Session.Status)
	assert.NotEmpty(t, resp.Session.PreviewText)

	w = do(t, s, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	flow, ok := s.uploads.Get(resp.UploadID)
	require.True(t, ok)
	require.NoError(t, flow.Wait(waitCtx(t)))

	resp = decode[UploadResponse](t, do(t, s, http.MethodGet, base, nil))
	require.NotNil(t, resp.Session)
	assert.Equal(t, types.UploadSuccess, resp.Session.Status)

	// A finished session cannot be submitted again.
	assert.Equal(t, http.StatusConflict, do(t, s, http.MethodPost, base+"/submit", nil).Code)

	w = do(t, s, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[UploadResponse](t, w).Session)
}

// postMultipart sends fields in order, then a "file" part of fileSize bytes.
func postMultipart(t *testing.T, s *Server, target string, fields map[string]string, fileSize int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", "resume.pdf")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), fileSize))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestUpload_MultipartBodyIsBounded(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxBytes = 1024
	s := newTestServer(t, cfg)

	t.Run("oversized form field", func(t *testing.T) {
		base := createUpload(t, s)
		w := postMultipart(t, s, base+"/file", map[string]string{"note": strings.Repeat("n", 200<<10)}, 10)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[map[string]string](t, w)["error"], "Invalid multipart body")
	})

	t.Run("oversized file", func(t *testing.T) {
		base := createUpload(t, s)
		w := postMultipart(t, s, base+"/file", nil, 2048)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "File size must be less than 1KB", decode[map[string]string](t, w)["error"])
	})

	t.Run("file within limit", func(t *testing.T) {
		base := createUpload(t, s)
		w := postMultipart(t, s, base+"/file", map[string]string{"note": "hi"}, 512)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[UploadResponse](t, w)
		require.NotNil(t, resp.Session)
		assert.Equal(t, int64(512), resp.Session.File.SizeBytes)
	})
}

func TestUpload_ConfiguredFileType(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MimeType = "application/msword"
	cfg.Upload.Extension = ".doc"
	s := newTestServer(t, cfg)

	w := do(t, s, http.MethodPost, "/uploads", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[UploadResponse](t, w)
	assert.Equal(t, UploadLimits{MaxBytes: 5242880, MimeType: "application/msword", Extension: ".doc"}, created.Limits)
	base := "/uploads/" + created.UploadID.String()

	w = do(t, s, http.MethodPost, base+"/file", types.FileInfo{Name: "resume.pdf", SizeBytes: 10, MimeType: "application/pdf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please upload a DOC file only", decode[map[string]string](t, w)["error"])

	w = do(t, s, http.MethodPost, base+"/file", types.FileInfo{Name: "resume.doc", SizeBytes: 10, MimeType: "application/msword"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpload_Multipart(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "ignored"))
	fw, err := mw.CreateFormFile("file", "resume.pdf")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("%PDF"), 256))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, base+"/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[UploadResponse](t, w)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "resume.pdf", resp.Session.File.Name)
	assert.Equal(t, int64(1024), resp.Session.File.SizeBytes)
	assert.Equal(t, "application/pdf", resp.Session.File.MimeType)
}

func TestUpload_MultipartMissingPart(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, base+"/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUpload(t *testing.T) {
	s := newTestServer(t, nil)
	base := createUpload(t, s)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, base, nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/uploads/nope", nil).Code)
}

// --- signup ---

func TestSignup(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       types.SignupRequest
		wantStatus int
		wantError  string
	}{
		{
			name:       "passwords differ",
			body:       types.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "password1", ConfirmPassword: "password2"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Passwords do not match",
		},
		{
			name:       "bad email",
			body:       types.SignupRequest{Name: "Ada", Email: "ada", Password: "password1", ConfirmPassword: "password1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email must be a valid email",
		},
		{
			name:       "missing name",
			body:       types.SignupRequest{Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name is required",
		},
		{
			name:       "valid",
			body:       types.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "short matching password",
			body:       types.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "abc", ConfirmPassword: "abc"},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/auth/signup", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decode[map[string]string](t, w)["error"])
				return
			}
			resp := decode[types.SignupResponse](t, w)
			assert.Equal(t, "Account Created", resp.Title)
			assert.Equal(t, "Welcome to AI Career Mentor! Please check your email for verification.", resp.Message)
		})
	}
}

// --- login ---

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing email",
			body:       types.LoginRequest{Password: "abc"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email is required",
		},
		{
			name:       "bad email",
			body:       types.LoginRequest{Email: "ada", Password: "abc"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email must be a valid email",
		},
		{
			name:       "missing password",
			body:       types.LoginRequest{Email: "ada@example.com"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Password is required",
		},
		{
			name:       "malformed body",
			body:       "{",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid",
			body:       types.LoginRequest{Email: "ada@example.com", Password: "abc"},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/auth/login", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				if tt.wantError != "" {
					assert.Equal(t, tt.wantError, decode[map[string]string](t, w)["error"])
				}
				return
			}
			resp := decode[types.LoginResponse](t, w)
			assert.Equal(t, "Welcome Back", resp.Title)
			assert.Equal(t, "You are signed in to AI Career Mentor.", resp.Message)
		})
	}
}

func TestLogin_ListedInIndex(t *testing.T) {
	s := newTestServer(t, nil)

	resp := decode[IndexResponse](t, do(t, s, http.MethodGet, "/", nil))
	assert.Contains(t, resp.Routes, "POST /auth/login")
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/auth/login", nil).Code)
}

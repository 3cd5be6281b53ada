package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/chat"
	"github.com/jonathan/career-mentor/internal/types"
)

// ChatResponse represents a chat view
type ChatResponse struct {
	SessionID      uuid.UUID           `json:"session_id"`
	State          chat.State          `json:"state"`
	Messages       []types.ChatMessage `json:"messages"`
	QuickQuestions []string            `json:"quick_questions"`
	LastError      *ErrorInfo          `json:"last_error"`
}

// SendResponse represents the response for POST /chat/sessions/{id}/messages
type SendResponse struct {
	SessionID uuid.UUID         `json:"session_id"`
	Message   types.ChatMessage `json:"message"`
	State     chat.State        `json:"state"`
}

func chatResponse(id uuid.UUID, flow *chat.Flow) ChatResponse {
	snap := flow.Snapshot()
	return ChatResponse{
		SessionID:      id,
		State:          snap.State,
		Messages:       snap.Messages,
		QuickQuestions: flow.QuickQuestions(),
		LastError:      errorInfo(snap.LastError),
	}
}

// chatFlow resolves the {id} path value. It writes the error response
// itself and returns nil when the view does not exist.
func (s *Server) chatFlow(w http.ResponseWriter, r *http.Request) (uuid.UUID, *chat.Flow) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, nil
	}
	flow, ok := s.chats.Get(id)
	if !ok {
		s.errResponse(w, &ErrViewNotFound{Kind: "chat", ID: idStr})
		return id, nil
	}
	return id, flow
}

func (s *Server) handleQuickQuestions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"questions": s.catalog.QuickQuestions()})
}

func (s *Server) handleCreateChat(w http.ResponseWriter, _ *http.Request) {
	flow := chat.New(s.newChatResponder(), chat.Options{
		Greeting:       s.catalog.Greeting(),
		QuickQuestions: s.catalog.QuickQuestions(),
		Logger:         s.logger.With("view", "chat"),
	})
	id := s.chats.Create(flow)
	s.jsonResponse(w, http.StatusCreated, chatResponse(id, flow))
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	id, flow := s.chatFlow(w, r)
	if flow == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, chatResponse(id, flow))
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	if !s.chats.Delete(id) {
		s.errResponse(w, &ErrViewNotFound{Kind: "chat", ID: idStr})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sendMessage decodes the body and hands the text to the flow.
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) (uuid.UUID, *chat.Flow, *chat.Pending) {
	id, flow := s.chatFlow(w, r)
	if flow == nil {
		return id, nil, nil
	}

	var req types.SendMessageRequest
	if !s.decodeJSON(w, r, &req) {
		return id, nil, nil
	}
	if err := req.Validate(); err != nil {
		s.errResponse(w, err)
		return id, nil, nil
	}

	pending, err := flow.Send(req.Text)
	if err != nil {
		s.errResponse(w, err)
		return id, nil, nil
	}
	return id, flow, pending
}

// handleSendMessage accepts a message; the reply lands in the transcript later.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id, _, pending := s.sendMessage(w, r)
	if pending == nil {
		return
	}
	s.jsonResponse(w, http.StatusAccepted, SendResponse{
		SessionID: id,
		Message:   pending.Message,
		State:     chat.StateAwaiting,
	})
}

// handleSendMessageStream sends a message and streams the exchange as SSE.
// A client that disconnects early does not cancel the reply; it still
// lands in the transcript.
func (s *Server) handleSendMessageStream(w http.ResponseWriter, r *http.Request) {
	id, flow, pending := s.sendMessage(w, r)
	if pending == nil {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := sse.WriteEvent(eventMessage, pending.Message); err != nil {
		return
	}
	if err := sse.WriteEvent(eventTyping, map[string]any{"session_id": id, "typing": true}); err != nil {
		return
	}

	select {
	case <-pending.Done():
	case <-r.Context().Done():
		return
	}

	outcome := pending.Outcome()
	if outcome.Err != nil {
		sse.WriteError(outcome.Err)
	} else if err := sse.WriteEvent(eventMessage, outcome.Reply); err != nil {
		return
	}
	sse.WriteComplete(id.String(), string(flow.Snapshot().State))
}

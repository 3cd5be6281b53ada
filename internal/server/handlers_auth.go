package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/career-mentor/internal/types"
)

// Confirmations shown once a form passes validation.
const (
	signupTitle   = "Account Created"
	signupMessage = "Welcome to AI Career Mentor! Please check your email for verification."
	loginTitle    = "Welcome Back"
	loginMessage  = "You are signed in to AI Career Mentor."
)

// handleSignup validates the sign-up form. Nothing is persisted.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.Password != req.ConfirmPassword {
		s.errResponse(w, &ErrPasswordMismatch{})
		return
	}
	if err := req.Validate(); err != nil {
		s.errResponse(w, err)
		return
	}

	s.logger.Info("signup form accepted", "email_domain", emailDomain(req.Email))
	s.jsonResponse(w, http.StatusOK, types.SignupResponse{Title: signupTitle, Message: signupMessage})
}

// handleLogin validates the log-in form. No credentials are checked.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errResponse(w, err)
		return
	}

	s.logger.Info("login form accepted", "email_domain", emailDomain(req.Email))
	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Title: loginTitle, Message: loginMessage})
}

func emailDomain(email string) string {
	_, domain, _ := strings.Cut(email, "@")
	return domain
}

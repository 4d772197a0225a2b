package api

import (
	"log/slog"
	"net/http"

	"github.com/divvyup/divvyup/internal/middleware"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := s.authn.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserView(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserView(user)})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := s.store.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

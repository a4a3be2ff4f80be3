package server

import (
	"fmt"
	"net/http"

	"innkeep/internal/api"
	"innkeep/internal/auth"
	"innkeep/internal/models"
	"innkeep/internal/store"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	username, err := auth.NormalizeUsername(req.Username)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	user := &models.User{Username: username, PasswordHash: passwordHash, IsActive: true}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if store.IsUniqueViolation(err) {
			s.writeErrorReq(w, r, http.StatusConflict,
				conflictCode(fmt.Errorf("username already taken"), ErrCodeUsernameTaken))
			return
		}
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	username, err := auth.NormalizeUsername(req.Username)
	if err != nil {
		s.writeUnauthorizedLogin(w, r)
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil || !user.IsActive || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.writeUnauthorizedLogin(w, r)
		return
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(fmt.Errorf("issue token: %w", err)))
		return
	}

	s.writeJSON(w, http.StatusOK, api.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Username:    user.Username,
	})
}

func (s *Server) writeUnauthorizedLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid credentials")))
}

package server

import (
	"fmt"
	"net/http"

	"innkeep/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeErrorReq(w, r, http.StatusServiceUnavailable,
			storageUnavailable(fmt.Errorf("database ping: %w", err)))
		return
	}
	s.writeJSON(w, http.StatusOK, api.ReadyResponse{Status: "ok", Database: "ok"})
}

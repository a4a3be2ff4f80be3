package server

import (
	"fmt"
	"net/http"
	"strings"

	"innkeep/internal/api"
	"innkeep/internal/models"
)

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.store.ListRooms(r.Context())
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	s.writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req api.RoomCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	room := &models.Room{
		Name:          strings.TrimSpace(req.Name),
		RoomType:      strings.TrimSpace(req.RoomType),
		Floor:         req.Floor,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
	}
	if err := validateRoom(room); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	if err := s.store.CreateRoom(r.Context(), room); err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, room)
}

func validateRoom(room *models.Room) error {
	if room.Name == "" {
		return fmt.Errorf("name is required")
	}
	if room.Capacity <= 0 {
		return fmt.Errorf("capacity must be greater than zero")
	}
	if room.PricePerNight < 0 {
		return fmt.Errorf("price per night cannot be negative")
	}
	return nil
}

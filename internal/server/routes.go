package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health checks.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/ready", s.handleReady)

	// Auth.
	mux.HandleFunc("POST /v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /v1/auth/login", s.handleLogin)

	// Customers.
	mux.HandleFunc("GET /v1/customers", s.requireAuth(s.handleListCustomers))
	mux.HandleFunc("POST /v1/customers", s.requireAuth(s.handleCreateCustomer))
	mux.HandleFunc("GET /v1/customers/{id}", s.requireAuth(s.handleGetCustomer))

	// Identity-proof documents.
	mux.HandleFunc("POST /v1/customers/{id}/document", s.requireAuth(s.handleUploadDocument))
	mux.HandleFunc("DELETE /v1/customers/{id}/document", s.requireAuth(s.handleDeleteDocument))

	// Rooms.
	mux.HandleFunc("GET /v1/rooms", s.requireAuth(s.handleListRooms))
	mux.HandleFunc("POST /v1/rooms", s.requireAuth(s.handleCreateRoom))

	// Bookings.
	mux.HandleFunc("GET /v1/bookings", s.requireAuth(s.handleListBookings))
	mux.HandleFunc("POST /v1/bookings", s.requireAuth(s.handleCreateBooking))
	mux.HandleFunc("PATCH /v1/bookings/{id}/check-in", s.requireAuth(s.handleCheckIn))
	mux.HandleFunc("PATCH /v1/bookings/{id}/check-out", s.requireAuth(s.handleCheckOut))

	return s.withRequestLogging(mux)
}

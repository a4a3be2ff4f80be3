package server

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"innkeep/internal/api"
	"innkeep/internal/models"
)

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.store.ListCustomers(r.Context())
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	s.writeJSON(w, http.StatusOK, customers)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req api.CustomerCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	customer := &models.Customer{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Address:         strings.TrimSpace(req.Address),
		ProofOfIdentity: strings.TrimSpace(req.ProofOfIdentity),
	}
	if err := validateCustomer(customer); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	if err := s.store.CreateCustomer(r.Context(), customer); err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	customer, err := s.store.GetCustomer(r.Context(), id)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if customer == nil {
		s.writeErrorReq(w, r, http.StatusNotFound,
			notFoundCode(fmt.Errorf("customer %d not found", id), ErrCodeCustomerNotFound))
		return
	}

	s.writeJSON(w, http.StatusOK, customer)
}

func validateCustomer(c *models.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("invalid email address")
		}
	}
	return nil
}

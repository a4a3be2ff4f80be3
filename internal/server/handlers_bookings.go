package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"innkeep/internal/api"
	"innkeep/internal/models"
	"innkeep/internal/store"
)

const bookingDateLayout = "2006-01-02"

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.store.ListBookings(r.Context())
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	s.writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req api.BookingCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	booking, err := bookingFromRequest(&req)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	ctx := r.Context()

	room, err := s.store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if room == nil {
		s.writeErrorReq(w, r, http.StatusNotFound,
			notFoundCode(fmt.Errorf("room %d not found", booking.RoomID), ErrCodeRoomNotFound))
		return
	}

	customer, err := s.store.GetCustomer(ctx, booking.CustomerID)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if customer == nil {
		s.writeErrorReq(w, r, http.StatusNotFound,
			notFoundCode(fmt.Errorf("customer %d not found", booking.CustomerID), ErrCodeCustomerNotFound))
		return
	}

	occupied, err := s.store.RoomOccupied(ctx, booking.RoomID, booking.ScheduledCheckIn, booking.ScheduledCheckOut)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if occupied {
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("room %d is not available for the requested dates", booking.RoomID), ErrCodeRoomUnavailable))
		return
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.CheckInBooking(r.Context(), id, time.Now().UTC()); err != nil {
		s.writeBookingUpdateError(w, r, id, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "booking_id": id, "booking_status": models.BookingCheckedIn})
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.CheckOutBooking(r.Context(), id, time.Now().UTC()); err != nil {
		s.writeBookingUpdateError(w, r, id, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "booking_id": id, "booking_status": models.BookingCheckedOut})
}

func (s *Server) writeBookingUpdateError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, store.ErrBookingNotFound) {
		s.writeErrorReq(w, r, http.StatusNotFound,
			notFoundCode(fmt.Errorf("booking %d not found", id), ErrCodeBookingNotFound))
		return
	}
	s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
}

func bookingFromRequest(req *api.BookingCreateRequest) (*models.Booking, error) {
	checkIn, err := time.Parse(bookingDateLayout, req.ScheduledCheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_check_in, expected YYYY-MM-DD")
	}
	checkOut, err := time.Parse(bookingDateLayout, req.ScheduledCheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_check_out, expected YYYY-MM-DD")
	}

	bookingStatus := models.BookingConfirmed
	if req.BookingStatus != "" {
		if bookingStatus, err = models.ParseBookingStatus(req.BookingStatus); err != nil {
			return nil, err
		}
	}
	paymentStatus := models.PaymentPending
	if req.PaymentStatus != "" {
		if paymentStatus, err = models.ParsePaymentStatus(req.PaymentStatus); err != nil {
			return nil, err
		}
	}

	booking := &models.Booking{
		RoomID:            req.RoomID,
		CustomerID:        req.CustomerID,
		ScheduledCheckIn:  checkIn,
		ScheduledCheckOut: checkOut,
		BookingStatus:     string(bookingStatus),
		PaymentStatus:     string(paymentStatus),
		TotalAmount:       req.TotalAmount,
		AmountPaid:        req.AmountPaid,
		AdditionalCharges: req.AdditionalCharges,
		Notes:             req.Notes,
	}
	if err := booking.Validate(); err != nil {
		return nil, err
	}
	return booking, nil
}

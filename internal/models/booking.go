package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus defines allowed booking lifecycle states.
type BookingStatus string

const (
	BookingPrebooked  BookingStatus = "prebooked"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// PaymentStatus defines allowed payment states.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

var validBookingStatuses = map[BookingStatus]struct{}{
	BookingPrebooked:  {},
	BookingConfirmed:  {},
	BookingCheckedIn:  {},
	BookingCheckedOut: {},
	BookingCancelled:  {},
}

var validPaymentStatuses = map[PaymentStatus]struct{}{
	PaymentPending: {},
	PaymentPartial: {},
	PaymentPaid:    {},
}

// ActiveBookingStatuses are the states that occupy a room.
var ActiveBookingStatuses = []BookingStatus{
	BookingPrebooked,
	BookingConfirmed,
	BookingCheckedIn,
}

// ParseBookingStatus validates and normalizes a booking status.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validBookingStatuses[status]; !ok {
		return "", fmt.Errorf("invalid booking status %q", raw)
	}
	return status, nil
}

// ParsePaymentStatus validates and normalizes a payment status.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validPaymentStatuses[status]; !ok {
		return "", fmt.Errorf("invalid payment status %q", raw)
	}
	return status, nil
}

// Booking is one reservation of a room by a customer.
type Booking struct {
	ID                int64      `db:"id" json:"id"`
	RoomID            int64      `db:"room_id" json:"room_id"`
	CustomerID        int64      `db:"customer_id" json:"customer_id"`
	ScheduledCheckIn  time.Time  `db:"scheduled_check_in" json:"scheduled_check_in"`
	ScheduledCheckOut time.Time  `db:"scheduled_check_out" json:"scheduled_check_out"`
	ActualCheckIn     *time.Time `db:"actual_check_in" json:"actual_check_in,omitempty"`
	ActualCheckOut    *time.Time `db:"actual_check_out" json:"actual_check_out,omitempty"`
	BookingStatus     string     `db:"booking_status" json:"booking_status"`
	PaymentStatus     string     `db:"payment_status" json:"payment_status"`
	TotalAmount       float64    `db:"total_amount" json:"total_amount"`
	AmountPaid        float64    `db:"amount_paid" json:"amount_paid"`
	AdditionalCharges float64    `db:"additional_charges" json:"additional_charges"`
	Notes             string     `db:"notes" json:"notes,omitempty"`
	BookingDate       time.Time  `db:"booking_date" json:"booking_date"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// Validate checks booking fields that do not require store access.
func (b *Booking) Validate() error {
	if b == nil {
		return fmt.Errorf("booking is required")
	}
	if b.RoomID <= 0 {
		return fmt.Errorf("room_id is required")
	}
	if b.CustomerID <= 0 {
		return fmt.Errorf("customer_id is required")
	}
	if b.ScheduledCheckIn.IsZero() || b.ScheduledCheckOut.IsZero() {
		return fmt.Errorf("scheduled check-in and check-out are required")
	}
	if !b.ScheduledCheckOut.After(b.ScheduledCheckIn) {
		return fmt.Errorf("check-out date must be after check-in date")
	}
	if b.TotalAmount <= 0 {
		return fmt.Errorf("total amount must be greater than zero")
	}
	if b.AmountPaid < 0 {
		return fmt.Errorf("amount paid cannot be negative")
	}
	if b.AmountPaid > b.TotalAmount {
		return fmt.Errorf("amount paid cannot exceed total amount")
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"innkeep/internal/models"
)

// ErrBookingNotFound is returned when a booking id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

const bookingColumns = "id, room_id, customer_id, scheduled_check_in, scheduled_check_out, actual_check_in, actual_check_out, booking_status, payment_status, total_amount, amount_paid, additional_charges, notes, booking_date, updated_at"

// RoomOccupied reports whether any active booking for the room overlaps the
// given scheduled window.
func (s *Store) RoomOccupied(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM bookings
		 WHERE room_id = $1
		   AND booking_status = ANY($2)
		   AND scheduled_check_in < $3
		   AND scheduled_check_out > $4
		 LIMIT 1`,
		roomID, activeStatusArray(), checkOut, checkIn).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateBooking inserts one booking row and fills in the generated id and
// timestamps.
func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.QueryRowContext(ctx,
		`INSERT INTO bookings (room_id, customer_id, scheduled_check_in, scheduled_check_out, booking_status, payment_status, total_amount, amount_paid, additional_charges, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, booking_date, updated_at`,
		booking.RoomID, booking.CustomerID, booking.ScheduledCheckIn, booking.ScheduledCheckOut,
		booking.BookingStatus, booking.PaymentStatus, booking.TotalAmount, booking.AmountPaid,
		booking.AdditionalCharges, booking.Notes,
	).Scan(&booking.ID, &booking.BookingDate, &booking.UpdatedAt)
}

// ListBookings lists all bookings ordered by booking date descending.
func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := s.db.SelectContext(ctx, &bookings, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC`)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CheckInBooking marks a booking as checked in. The row is locked for the
// duration of the update so concurrent check-in/check-out calls serialize.
func (s *Store) CheckInBooking(ctx context.Context, id int64, at time.Time) error {
	return s.withBookingForUpdate(ctx, id, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE bookings SET actual_check_in = $1, booking_status = $2, updated_at = now() WHERE id = $3`,
			at, string(models.BookingCheckedIn), id)
		return err
	})
}

// CheckOutBooking marks a booking as checked out.
func (s *Store) CheckOutBooking(ctx context.Context, id int64, at time.Time) error {
	return s.withBookingForUpdate(ctx, id, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE bookings SET actual_check_out = $1, booking_status = $2, updated_at = now() WHERE id = $3`,
			at, string(models.BookingCheckedOut), id)
		return err
	})
}

func (s *Store) withBookingForUpdate(ctx context.Context, id int64, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrBookingNotFound
		}
		return err
	}

	if err = fn(tx); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

func activeStatusArray() interface{} {
	statuses := make([]string, 0, len(models.ActiveBookingStatuses))
	for _, s := range models.ActiveBookingStatuses {
		statuses = append(statuses, string(s))
	}
	return pq.Array(statuses)
}

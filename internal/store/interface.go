package store

import (
	"context"
	"time"

	"innkeep/internal/models"
)

// CustomerStore is the persistence surface for customer records, including
// the row-locked accessor used by the document coordinator.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	WithCustomerForUpdate(ctx context.Context, id int64, fn func(CustomerDocument) error) error
}

// RoomStore is the persistence surface for rooms.
type RoomStore interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
}

// BookingStore is the persistence surface for bookings.
type BookingStore interface {
	RoomOccupied(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	ListBookings(ctx context.Context) ([]models.Booking, error)
	CheckInBooking(ctx context.Context, id int64, at time.Time) error
	CheckOutBooking(ctx context.Context, id int64, at time.Time) error
}

// UserStore is the persistence surface for staff accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

var _ CustomerStore = (*Store)(nil)
var _ RoomStore = (*Store)(nil)
var _ BookingStore = (*Store)(nil)
var _ UserStore = (*Store)(nil)

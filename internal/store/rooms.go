package store

import (
	"context"
	"database/sql"
	"errors"

	"innkeep/internal/models"
)

// ErrRoomNotFound is returned when a room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

const roomColumns = "id, name, room_type, floor, capacity, price_per_night, amenities, created_at, updated_at"

// CreateRoom inserts one room row and fills in the generated id and
// timestamps.
func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	return s.db.QueryRowContext(ctx,
		`INSERT INTO rooms (name, room_type, floor, capacity, price_per_night, amenities)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		room.Name, room.RoomType, room.Floor, room.Capacity, room.PricePerNight, room.Amenities,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

// GetRoom returns one room by id, or nil when absent.
func (s *Store) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := s.db.GetContext(ctx, &room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms lists all rooms ordered by id.
func (s *Store) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.db.SelectContext(ctx, &rooms, `SELECT `+roomColumns+` FROM rooms ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

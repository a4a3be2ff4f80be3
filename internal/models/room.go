package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Amenities is a string list stored as a JSON column.
type Amenities []string

// Value implements driver.Valuer.
func (a Amenities) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (a *Amenities) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported amenities column type %T", src)
	}
}

// Room is one rentable unit.
type Room struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	RoomType      string    `db:"room_type" json:"room_type"`
	Floor         int       `db:"floor" json:"floor"`
	Capacity      int       `db:"capacity" json:"capacity"`
	PricePerNight float64   `db:"price_per_night" json:"price_per_night"`
	Amenities     Amenities `db:"amenities" json:"amenities"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

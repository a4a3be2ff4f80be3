// Package api defines the JSON request and response shapes of the innkeep
// HTTP API.
package api

import "time"

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// LoginRequest is the credentials payload for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
}

// RegisterRequest creates a staff account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CustomerCreateRequest creates a customer record.
type CustomerCreateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	ProofOfIdentity string `json:"proof_of_identity"`
}

// RoomCreateRequest creates a room.
type RoomCreateRequest struct {
	Name          string   `json:"name"`
	RoomType      string   `json:"room_type"`
	Floor         int      `json:"floor"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
}

// BookingCreateRequest creates a booking.
type BookingCreateRequest struct {
	RoomID            int64   `json:"room_id"`
	CustomerID        int64   `json:"customer_id"`
	ScheduledCheckIn  string  `json:"scheduled_check_in"`
	ScheduledCheckOut string  `json:"scheduled_check_out"`
	BookingStatus     string  `json:"booking_status"`
	PaymentStatus     string  `json:"payment_status"`
	TotalAmount       float64 `json:"total_amount"`
	AmountPaid        float64 `json:"amount_paid"`
	AdditionalCharges float64 `json:"additional_charges"`
	Notes             string  `json:"notes"`
}

// DocumentUploadResponse reports a stored identity-proof document.
type DocumentUploadResponse struct {
	CustomerID   int64     `json:"customer_id"`
	FileURL      string    `json:"file_url"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	DocumentType string    `json:"document_type,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// DocumentDeleteResponse reports a detached document.
type DocumentDeleteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	CustomerID int64  `json:"customer_id"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness payload.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

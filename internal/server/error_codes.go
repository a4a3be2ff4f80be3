package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument  = 1000
	ErrCodeInvalidJSON      = 1001
	ErrCodeRequestTooLarge  = 1002
	ErrCodeInvalidID        = 1003
	ErrCodeMissingRequired  = 1004
	ErrCodeFileTooLarge     = 1005
	ErrCodeFileTypeRejected = 1006
	ErrCodeBadFilename      = 1007
	ErrCodeInvalidDates     = 1008

	// Domain state (2xxx)
	ErrCodeCustomerNotFound = 2001
	ErrCodeRoomNotFound     = 2002
	ErrCodeBookingNotFound  = 2003
	ErrCodeRoomUnavailable  = 2101
	ErrCodeUsernameTaken    = 2102
	ErrCodeConflict         = 2103

	// Auth (3xxx)
	ErrCodeUnauthorized = 3001
	ErrCodeForbidden    = 3002

	// Internal/system (4xxx)
	ErrCodeInternal           = 4001
	ErrCodeStoreFailure       = 4002
	ErrCodeStorageUnavailable = 4003
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeCustomerNotFound
	case 409:
		return ErrCodeConflict
	case 415:
		return ErrCodeFileTypeRejected
	case 500:
		return ErrCodeInternal
	case 503:
		return ErrCodeStorageUnavailable
	default:
		return 0
	}
}

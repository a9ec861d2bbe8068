package core

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// to HTTP status codes; anything else maps to a generic 500.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrQuotaExceeded    = errors.New("quota exceeded")
)

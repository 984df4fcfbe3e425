package services

import "errors"

// Dashboard service errors
var (
	ErrNoBaseTable        = errors.New("base table not loaded")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

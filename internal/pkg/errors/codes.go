package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Navigation session not found",
		http.StatusNotFound,
	)

	ErrTourNotFound = New(
		"TOUR_NOT_FOUND",
		"Tour not found",
		http.StatusNotFound,
	)

	ErrTourNotActive = New(
		"TOUR_NOT_ACTIVE",
		"Tour has no active progression",
		http.StatusConflict,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

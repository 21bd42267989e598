package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	// ErrRateLimited dipakai limiter per IP / per user; pesan dipertajam lewat Withf.
	ErrRateLimited = New(
		CodeRateLimited,
		"Too many requests",
		http.StatusTooManyRequests,
	)

	// ErrRequestInFlight: Idempotency-Key yang sama masih diproses (bulk generate, batch absensi).
	ErrRequestInFlight = New(
		CodeProcessing,
		"Request with the same Idempotency-Key is still being processed",
		http.StatusConflict,
	)
)

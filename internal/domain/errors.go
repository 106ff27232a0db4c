package domain

import "errors"

var (
	// ErrCardNotFound is returned when a card cannot be found in the catalog
	ErrCardNotFound = errors.New("card not found in catalog")

	// ErrNoEligibleCards is returned when income filtering leaves an empty pool
	ErrNoEligibleCards = errors.New("no cards eligible for the given income")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the catalog store cannot be reached
	ErrCatalogUnavailable = errors.New("catalog store unavailable")

	// ErrAdvisorFailure is returned when the conversational AI request fails
	ErrAdvisorFailure = errors.New("advisor request failed")

	// ErrSessionNotFound is returned for an unknown conversation session id
	ErrSessionNotFound = errors.New("conversation session not found")

	// ErrSessionBusy is returned when a message arrives while a previous one
	// is still being processed for the same session
	ErrSessionBusy = errors.New("conversation session is busy")
)

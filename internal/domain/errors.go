package domain

import "errors"

var (
	// ErrNotFound is returned by GetByID and by business-key lookups that
	// come up empty.
	ErrNotFound = errors.New("not found")

	// ErrRoomUnavailable covers both "no such room number" and "already
	// reserved" on a reservation attempt.
	ErrRoomUnavailable = errors.New("room is not available")

	ErrDuplicateRoom = errors.New("room number already exists")

	// ErrInvalidInput is wrapped by validation failures; nothing has been
	// written to any store when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoResult is the "no result" outcome of aggregations, distinct from
	// a store failure.
	ErrNoResult = errors.New("no result")
)

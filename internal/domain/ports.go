package domain

import "context"

// Snapshot stores: each store owns one whole collection per entity type and
// acts on it as a unit. Once an operation returns successfully the new state
// is visible to the next GetAll from any caller in this process. There is no
// partial or streaming access, and no locking: a single writer is assumed.
//
// Insert assigns the store's own surrogate key and returns the stored record.
// Replace and Delete are no-ops when the key is absent.

type RoomStore interface {
	GetAll(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id int64) (Room, error)
	Insert(ctx context.Context, r Room) (Room, error)
	Replace(ctx context.Context, r Room) error
	Delete(ctx context.Context, id int64) error
}

type GuestStore interface {
	GetAll(ctx context.Context) ([]Guest, error)
	GetByID(ctx context.Context, id int64) (Guest, error)
	Insert(ctx context.Context, g Guest) (Guest, error)
	Replace(ctx context.Context, g Guest) error
	Delete(ctx context.Context, id int64) error
}

type BookingStore interface {
	GetAll(ctx context.Context) ([]Booking, error)
	GetByID(ctx context.Context, id int64) (Booking, error)
	Insert(ctx context.Context, b Booking) (Booking, error)
	Replace(ctx context.Context, b Booking) error
	Delete(ctx context.Context, id int64) error
}

type ReviewStore interface {
	GetAll(ctx context.Context) ([]Review, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	Insert(ctx context.Context, v Review) (Review, error)
	Replace(ctx context.Context, v Review) error
	Delete(ctx context.Context, id int64) error
}

// Store bundles the four collections of one backend. Name identifies the
// backend in results, logs and metrics ("sqlite", "mysql", "jsonfile").
type Store interface {
	Name() string
	Rooms() RoomStore
	Guests() GuestStore
	Bookings() BookingStore
	Reviews() ReviewStore
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Package jsonfile is the flat-document snapshot store: one JSON file per
// entity collection, read whole / written whole on every operation. It is
// the mirror backend and assumes a single writer.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"silaf_hotel/internal/adapters/observability"
	"silaf_hotel/internal/domain"
)

const storeName = "jsonfile"

type Store struct {
	rooms    *collection[domain.Room]
	guests   *collection[domain.Guest]
	bookings *collection[domain.Booking]
	reviews  *collection[domain.Review]
}

// New creates the data directory if needed and binds one file per collection.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		rooms: &collection[domain.Room]{
			path:    filepath.Join(dir, "rooms.json"),
			entity:  "room",
			key:     func(r domain.Room) int64 { return r.RoomID },
			withKey: func(r domain.Room, id int64) domain.Room { r.RoomID = id; return r },
		},
		guests: &collection[domain.Guest]{
			path:    filepath.Join(dir, "guests.json"),
			entity:  "guest",
			key:     func(g domain.Guest) int64 { return g.GuestID },
			withKey: func(g domain.Guest, id int64) domain.Guest { g.GuestID = id; return g },
		},
		bookings: &collection[domain.Booking]{
			path:    filepath.Join(dir, "bookings.json"),
			entity:  "booking",
			key:     func(b domain.Booking) int64 { return b.BookingID },
			withKey: func(b domain.Booking, id int64) domain.Booking { b.BookingID = id; return b },
		},
		reviews: &collection[domain.Review]{
			path:    filepath.Join(dir, "reviews.json"),
			entity:  "review",
			key:     func(v domain.Review) int64 { return v.ReviewID },
			withKey: func(v domain.Review, id int64) domain.Review { v.ReviewID = id; return v },
		},
	}, nil
}

func (s *Store) Name() string                  { return storeName }
func (s *Store) Rooms() domain.RoomStore       { return s.rooms }
func (s *Store) Guests() domain.GuestStore     { return s.guests }
func (s *Store) Bookings() domain.BookingStore { return s.bookings }
func (s *Store) Reviews() domain.ReviewStore   { return s.reviews }

// collection holds one entity type in one file. All five operations load the
// full slice and, for mutations, rewrite the file via a temp file + rename so
// readers never observe a half-written snapshot.
type collection[E any] struct {
	path    string
	entity  string
	key     func(E) int64
	withKey func(E, int64) E
}

func (c *collection[E]) load() ([]E, error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	var items []E
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return items, nil
}

func (c *collection[E]) save(items []E) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (c *collection[E]) GetAll(_ context.Context) (items []E, err error) {
	defer func() { observability.ObserveStore(storeName, c.entity, "get_all", err) }()
	return c.load()
}

func (c *collection[E]) GetByID(_ context.Context, id int64) (item E, err error) {
	defer func() { observability.ObserveStore(storeName, c.entity, "get_by_id", err) }()
	items, err := c.load()
	if err != nil {
		return item, err
	}
	for _, e := range items {
		if c.key(e) == id {
			return e, nil
		}
	}
	return item, domain.ErrNotFound
}

// Insert assigns max(existing key)+1, or 1 on an empty collection. Keys are
// only unique within the current collection; deleting the highest record
// makes its key reusable.
func (c *collection[E]) Insert(_ context.Context, e E) (out E, err error) {
	defer func() { observability.ObserveStore(storeName, c.entity, "insert", err) }()
	items, err := c.load()
	if err != nil {
		return out, err
	}
	var next int64 = 1
	for _, it := range items {
		if k := c.key(it); k >= next {
			next = k + 1
		}
	}
	out = c.withKey(e, next)
	if err = c.save(append(items, out)); err != nil {
		return out, err
	}
	return out, nil
}

func (c *collection[E]) Replace(_ context.Context, e E) (err error) {
	defer func() { observability.ObserveStore(storeName, c.entity, "replace", err) }()
	items, err := c.load()
	if err != nil {
		return err
	}
	for i, it := range items {
		if c.key(it) == c.key(e) {
			items[i] = e
			return c.save(items)
		}
	}
	return nil // absent key: no-op
}

func (c *collection[E]) Delete(_ context.Context, id int64) (err error) {
	defer func() { observability.ObserveStore(storeName, c.entity, "delete", err) }()
	items, err := c.load()
	if err != nil {
		return err
	}
	for i, it := range items {
		if c.key(it) == id {
			return c.save(append(items[:i], items[i+1:]...))
		}
	}
	return nil // absent key: no-op
}

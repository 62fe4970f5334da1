package app_test

import (
	"context"
	"encoding/json"

	"silaf_hotel/internal/domain"
)

// ---- in-memory snapshot store double ----
//
// Same contract as the real backends: whole-collection semantics, max+1 key
// assignment on Insert, no-op Replace/Delete on absent keys. Each collection
// can be told to fail, for mirror-divergence cases.

type memColl[E any] struct {
	items   []E
	key     func(E) int64
	withKey func(E, int64) E
	fail    error
}

func (c *memColl[E]) GetAll(context.Context) ([]E, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	out := make([]E, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *memColl[E]) GetByID(_ context.Context, id int64) (E, error) {
	var zero E
	if c.fail != nil {
		return zero, c.fail
	}
	for _, e := range c.items {
		if c.key(e) == id {
			return e, nil
		}
	}
	return zero, domain.ErrNotFound
}

func (c *memColl[E]) Insert(_ context.Context, e E) (E, error) {
	var zero E
	if c.fail != nil {
		return zero, c.fail
	}
	var next int64 = 1
	for _, it := range c.items {
		if k := c.key(it); k >= next {
			next = k + 1
		}
	}
	e = c.withKey(e, next)
	c.items = append(c.items, e)
	return e, nil
}

func (c *memColl[E]) Replace(_ context.Context, e E) error {
	if c.fail != nil {
		return c.fail
	}
	for i, it := range c.items {
		if c.key(it) == c.key(e) {
			c.items[i] = e
			return nil
		}
	}
	return nil
}

func (c *memColl[E]) Delete(_ context.Context, id int64) error {
	if c.fail != nil {
		return c.fail
	}
	for i, it := range c.items {
		if c.key(it) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memStore struct {
	name     string
	rooms    *memColl[domain.Room]
	guests   *memColl[domain.Guest]
	bookings *memColl[domain.Booking]
	reviews  *memColl[domain.Review]
}

func newMemStore(name string) *memStore {
	return &memStore{
		name: name,
		rooms: &memColl[domain.Room]{
			key:     func(r domain.Room) int64 { return r.RoomID },
			withKey: func(r domain.Room, id int64) domain.Room { r.RoomID = id; return r },
		},
		guests: &memColl[domain.Guest]{
			key:     func(g domain.Guest) int64 { return g.GuestID },
			withKey: func(g domain.Guest, id int64) domain.Guest { g.GuestID = id; return g },
		},
		bookings: &memColl[domain.Booking]{
			key:     func(b domain.Booking) int64 { return b.BookingID },
			withKey: func(b domain.Booking, id int64) domain.Booking { b.BookingID = id; return b },
		},
		reviews: &memColl[domain.Review]{
			key:     func(v domain.Review) int64 { return v.ReviewID },
			withKey: func(v domain.Review, id int64) domain.Review { v.ReviewID = id; return v },
		},
	}
}

func (s *memStore) Name() string                  { return s.name }
func (s *memStore) Rooms() domain.RoomStore       { return s.rooms }
func (s *memStore) Guests() domain.GuestStore     { return s.guests }
func (s *memStore) Bookings() domain.BookingStore { return s.bookings }
func (s *memStore) Reviews() domain.ReviewStore   { return s.reviews }

// ---- cache double ----

type fakeCache struct {
	store   map[string][]byte
	deleted []string
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	delete(c.store, key)
	return nil
}

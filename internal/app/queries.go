package app

import (
	"context"
	"time"

	"silaf_hotel/internal/domain"
)

// QueryService is the read side over one store, with an optional cache-aside
// layer. Cache entries are invalidated by the Synchronizer after every
// successful authoritative write; a nil cache disables caching entirely.
type QueryService struct {
	store domain.Store
	cache domain.Cache
	ttl   time.Duration
}

func NewQueryService(st domain.Store, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: st, cache: c, ttl: ttl}
}

func (q *QueryService) Store() string { return q.store.Name() }

func (q *QueryService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	key := "rooms:" + q.store.Name()
	var rooms []domain.Room
	if q.cache != nil {
		if ok, _ := q.cache.Get(ctx, key, &rooms); ok {
			return rooms, nil
		}
	}
	rooms, err := q.store.Rooms().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if q.cache != nil {
		_ = q.cache.Set(ctx, key, rooms, int(q.ttl.Seconds()))
	}
	return rooms, nil
}

func (q *QueryService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	key := "reviews:" + q.store.Name()
	var reviews []domain.Review
	if q.cache != nil {
		if ok, _ := q.cache.Get(ctx, key, &reviews); ok {
			return reviews, nil
		}
	}
	reviews, err := q.store.Reviews().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if q.cache != nil {
		_ = q.cache.Set(ctx, key, reviews, int(q.ttl.Seconds()))
	}
	return reviews, nil
}

func (q *QueryService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return q.store.Bookings().GetAll(ctx)
}

func (q *QueryService) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	return q.store.Guests().GetAll(ctx)
}

// FindGuest is not cached: the query string is free-form, so stale entries
// could not be invalidated key-by-key.
func (q *QueryService) FindGuest(ctx context.Context, query string) (domain.Guest, error) {
	return FindGuestByName(ctx, q.store, query)
}

func (q *QueryService) HighestPayingGuest(ctx context.Context) (TopGuest, error) {
	key := "topguest:" + q.store.Name()
	var top TopGuest
	if q.cache != nil {
		if ok, _ := q.cache.Get(ctx, key, &top); ok {
			return top, nil
		}
	}
	top, err := HighestPayingGuest(ctx, q.store)
	if err != nil {
		return TopGuest{}, err
	}
	if q.cache != nil {
		_ = q.cache.Set(ctx, key, top, int(q.ttl.Seconds()))
	}
	return top, nil
}

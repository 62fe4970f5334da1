package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"silaf_hotel/internal/domain"
)

// Resync rebuilds the mirror from the authoritative snapshot: rooms and
// guests are reconciled first (independent collections, done concurrently),
// then bookings and reviews, whose foreign keys need the first phase in
// place. Mirror records with no authoritative counterpart are left alone;
// the mirror is best-effort, not compacted.
func (s *Synchronizer) Resync(ctx context.Context) error {
	rooms, err := s.auth.Rooms().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resync: load rooms: %w", err)
	}
	guests, err := s.auth.Guests().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resync: load guests: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, r := range rooms {
			if _, err := s.rec.Room(gctx, r); err != nil {
				return fmt.Errorf("resync room %d: %w", r.RoomNumber, err)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, gu := range guests {
			if _, err := s.rec.Guest(gctx, gu); err != nil {
				return fmt.Errorf("resync guest %q: %w", gu.Name, err)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.resyncBookings(ctx, rooms, guests); err != nil {
		return err
	}
	return s.resyncReviews(ctx, rooms, guests)
}

func (s *Synchronizer) resyncBookings(ctx context.Context, rooms []domain.Room, guests []domain.Guest) error {
	bookings, err := s.auth.Bookings().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resync: load bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil
	}
	existing, err := s.mirror.Bookings().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resync: load mirror bookings: %w", err)
	}

	roomByID := indexRooms(rooms)
	guestByID := indexGuests(guests)
	for _, b := range bookings {
		room, okR := roomByID[b.RoomID]
		guest, okG := guestByID[b.GuestID]
		if !okR || !okG {
			continue // dangling booking, nothing to correlate by
		}
		if mirrorHasBooking(ctx, existing, b, room, guest, s.mirror) {
			continue
		}
		if _, err := s.rec.Booking(ctx, b, room, guest); err != nil {
			return fmt.Errorf("resync booking %d: %w", b.BookingID, err)
		}
	}
	return nil
}

func (s *Synchronizer) resyncReviews(ctx context.Context, rooms []domain.Room, guests []domain.Guest) error {
	reviews, err := s.auth.Reviews().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resync: load reviews: %w", err)
	}
	if len(reviews) == 0 {
		return nil
	}
	existing, err := s.mirror.Reviews().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resync: load mirror reviews: %w", err)
	}

	roomByID := indexRooms(rooms)
	guestByID := indexGuests(guests)
	for _, v := range reviews {
		room, okR := roomByID[v.RoomID]
		guest, okG := guestByID[v.GuestID]
		if !okR || !okG {
			continue
		}
		if mirrorHasReview(ctx, existing, v, room, guest, s.mirror) {
			continue
		}
		if _, err := s.rec.Review(ctx, v, room, guest); err != nil {
			return fmt.Errorf("resync review %d: %w", v.ReviewID, err)
		}
	}
	return nil
}

func indexRooms(rooms []domain.Room) map[int64]domain.Room {
	m := make(map[int64]domain.Room, len(rooms))
	for _, r := range rooms {
		m[r.RoomID] = r
	}
	return m
}

func indexGuests(guests []domain.Guest) map[int64]domain.Guest {
	m := make(map[int64]domain.Guest, len(guests))
	for _, g := range guests {
		m[g.GuestID] = g
	}
	return m
}

// mirrorHasBooking reports whether the mirror already has the equivalent
// booking: same room number, same guest name, same nights and date.
func mirrorHasBooking(ctx context.Context, existing []domain.Booking, b domain.Booking, room domain.Room, guest domain.Guest, mirror domain.Store) bool {
	mRoom, err := findRoomByNumber(ctx, mirror, room.RoomNumber)
	if err != nil {
		return false
	}
	mGuest, err := findGuestByExactName(ctx, mirror, guest.Name)
	if err != nil {
		return false
	}
	for _, e := range existing {
		if e.RoomID == mRoom.RoomID && e.GuestID == mGuest.GuestID &&
			e.Nights == b.Nights && e.BookingDate.Equal(b.BookingDate) {
			return true
		}
	}
	return false
}

func mirrorHasReview(ctx context.Context, existing []domain.Review, v domain.Review, room domain.Room, guest domain.Guest, mirror domain.Store) bool {
	mRoom, err := findRoomByNumber(ctx, mirror, room.RoomNumber)
	if err != nil {
		return false
	}
	mGuest, err := findGuestByExactName(ctx, mirror, guest.Name)
	if err != nil {
		return false
	}
	for _, e := range existing {
		if e.RoomID == mRoom.RoomID && e.GuestID == mGuest.GuestID &&
			e.Comment == v.Comment && e.Rating == v.Rating {
			return true
		}
	}
	return false
}

package app

import (
	"context"
	"strings"

	"silaf_hotel/internal/domain"
)

// Reconciler maps records known by their authoritative-store identity onto
// the mirror store. Surrogate keys are never carried across stores: rooms
// correlate by RoomNumber, guests by case-insensitive trimmed Name, and
// bookings/reviews re-resolve their foreign keys against the mirror's own
// surrogates. Key assignment for created records is the mirror store's
// Insert (max existing key + 1).
type Reconciler struct {
	mirror domain.Store
}

func NewReconciler(mirror domain.Store) *Reconciler {
	return &Reconciler{mirror: mirror}
}

func sameGuestName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Room creates the mirror room for an authoritative one, or updates the
// non-key fields of an existing match.
func (r *Reconciler) Room(ctx context.Context, auth domain.Room) (domain.Room, error) {
	rooms, err := r.mirror.Rooms().GetAll(ctx)
	if err != nil {
		return domain.Room{}, err
	}
	for _, m := range rooms {
		if m.RoomNumber == auth.RoomNumber {
			m.DailyRate = auth.DailyRate
			m.IsReserved = auth.IsReserved
			if err := r.mirror.Rooms().Replace(ctx, m); err != nil {
				return domain.Room{}, err
			}
			return m, nil
		}
	}
	return r.mirror.Rooms().Insert(ctx, domain.Room{
		RoomNumber: auth.RoomNumber,
		DailyRate:  auth.DailyRate,
		IsReserved: auth.IsReserved,
	})
}

// Guest matches by business key and creates or updates like Room.
func (r *Reconciler) Guest(ctx context.Context, auth domain.Guest) (domain.Guest, error) {
	guests, err := r.mirror.Guests().GetAll(ctx)
	if err != nil {
		return domain.Guest{}, err
	}
	for _, m := range guests {
		if sameGuestName(m.Name, auth.Name) {
			m.Name = auth.Name
			if err := r.mirror.Guests().Replace(ctx, m); err != nil {
				return domain.Guest{}, err
			}
			return m, nil
		}
	}
	return r.mirror.Guests().Insert(ctx, domain.Guest{Name: auth.Name})
}

// Booking always creates a new mirror record. room and guest are the
// authoritative copies the booking refers to; they are reconciled first so
// the new booking points at mirror surrogates.
func (r *Reconciler) Booking(ctx context.Context, auth domain.Booking, room domain.Room, guest domain.Guest) (domain.Booking, error) {
	mRoom, err := r.Room(ctx, room)
	if err != nil {
		return domain.Booking{}, err
	}
	mGuest, err := r.Guest(ctx, guest)
	if err != nil {
		return domain.Booking{}, err
	}
	return r.mirror.Bookings().Insert(ctx, domain.Booking{
		RoomID:      mRoom.RoomID,
		GuestID:     mGuest.GuestID,
		Nights:      auth.Nights,
		BookingDate: auth.BookingDate,
	})
}

// Review always creates, like Booking.
func (r *Reconciler) Review(ctx context.Context, auth domain.Review, room domain.Room, guest domain.Guest) (domain.Review, error) {
	mRoom, err := r.Room(ctx, room)
	if err != nil {
		return domain.Review{}, err
	}
	mGuest, err := r.Guest(ctx, guest)
	if err != nil {
		return domain.Review{}, err
	}
	return r.mirror.Reviews().Insert(ctx, domain.Review{
		RoomID:  mRoom.RoomID,
		GuestID: mGuest.GuestID,
		Comment: auth.Comment,
		Rating:  auth.Rating,
	})
}

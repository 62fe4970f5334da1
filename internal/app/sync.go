package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"silaf_hotel/internal/adapters/observability"
	"silaf_hotel/internal/domain"
)

// Synchronizer applies one logical operation to the authoritative store and
// then replays the equivalent effect on the mirror. The authoritative write
// gates everything: a validation failure touches neither store, an
// authoritative failure skips the mirror, and a mirror failure is reported
// but never rolled back or retried. The two stores are allowed to diverge.
type Synchronizer struct {
	auth   domain.Store
	mirror domain.Store
	rec    *Reconciler
	cache  domain.Cache // optional; invalidated after authoritative writes
	now    func() time.Time
}

func NewSynchronizer(auth, mirror domain.Store, cache domain.Cache) *Synchronizer {
	return &Synchronizer{
		auth:   auth,
		mirror: mirror,
		rec:    NewReconciler(mirror),
		cache:  cache,
		now:    time.Now,
	}
}

// StoreStatus is one store's leg of a logical operation. Applied false with
// a nil Err means the leg was skipped (mirror after an authoritative
// failure, or a mirror record that could not be correlated).
type StoreStatus struct {
	Store   string
	Applied bool
	Err     error
}

func (s StoreStatus) OK() bool { return s.Applied && s.Err == nil }

// Outcome reports both legs independently so callers can tell "fully
// synced" from "authoritative-only".
type Outcome struct {
	Authoritative StoreStatus
	Mirror        StoreStatus
}

func (o Outcome) Synced() bool { return o.Authoritative.OK() && o.Mirror.OK() }

func (s *Synchronizer) outcome(ctx context.Context, op string, authErr error, run func() error) Outcome {
	out := Outcome{
		Authoritative: StoreStatus{Store: s.auth.Name(), Applied: authErr == nil, Err: authErr},
		Mirror:        StoreStatus{Store: s.mirror.Name()},
	}
	observability.ObserveSync(op, s.auth.Name(), authErr)
	if authErr != nil {
		return out // mirror skipped, not retried
	}
	s.invalidate(ctx)
	mirrorErr := run()
	out.Mirror.Applied = mirrorErr == nil
	out.Mirror.Err = mirrorErr
	observability.ObserveSync(op, s.mirror.Name(), mirrorErr)
	if mirrorErr != nil {
		observability.ObserveDivergence(op)
		log.Warn().Str("op", op).Str("store", s.mirror.Name()).Err(mirrorErr).
			Msg("mirror write failed; authoritative result stands")
	}
	return out
}

// AddRoom registers a new room in both stores. The room number is the
// business key and must be unique within each store.
func (s *Synchronizer) AddRoom(ctx context.Context, number int, rate float64) (domain.Room, Outcome, error) {
	if number <= 0 {
		return domain.Room{}, Outcome{}, fmt.Errorf("%w: room number must be positive", domain.ErrInvalidInput)
	}
	if rate <= 0 {
		return domain.Room{}, Outcome{}, fmt.Errorf("%w: daily rate must be positive", domain.ErrInvalidInput)
	}

	room, authErr := s.addRoom(ctx, number, rate)
	out := s.outcome(ctx, "add_room", authErr, func() error {
		_, err := s.rec.Room(ctx, room)
		return err
	})
	return room, out, nil
}

func (s *Synchronizer) addRoom(ctx context.Context, number int, rate float64) (domain.Room, error) {
	rooms, err := s.auth.Rooms().GetAll(ctx)
	if err != nil {
		return domain.Room{}, err
	}
	for _, r := range rooms {
		if r.RoomNumber == number {
			return domain.Room{}, fmt.Errorf("room %d: %w", number, domain.ErrDuplicateRoom)
		}
	}
	return s.auth.Rooms().Insert(ctx, domain.Room{RoomNumber: number, DailyRate: rate})
}

// Reserve books a room by its number for a guest, creating the guest when
// the name is unknown. The three authoritative sub-steps (guest insert, room
// update, booking insert) are independent single-collection writes; a crash
// between them leaves a reserved room without a booking, which is accepted
// and surfaced by later reads rather than hidden.
func (s *Synchronizer) Reserve(ctx context.Context, guestName string, roomNumber, nights int) (domain.Booking, Outcome, error) {
	guestName = strings.TrimSpace(guestName)
	if guestName == "" || len(guestName) > domain.MaxGuestNameLen {
		return domain.Booking{}, Outcome{}, fmt.Errorf("%w: guest name must be 1-%d characters", domain.ErrInvalidInput, domain.MaxGuestNameLen)
	}
	if roomNumber <= 0 {
		return domain.Booking{}, Outcome{}, fmt.Errorf("%w: room number must be positive", domain.ErrInvalidInput)
	}
	if nights <= 0 {
		return domain.Booking{}, Outcome{}, fmt.Errorf("%w: nights must be positive", domain.ErrInvalidInput)
	}

	booking, room, guest, authErr := s.reserve(ctx, guestName, roomNumber, nights)
	out := s.outcome(ctx, "reserve", authErr, func() error {
		_, err := s.rec.Booking(ctx, booking, room, guest)
		return err
	})
	return booking, out, nil
}

func (s *Synchronizer) reserve(ctx context.Context, guestName string, roomNumber, nights int) (domain.Booking, domain.Room, domain.Guest, error) {
	room, err := findRoomByNumber(ctx, s.auth, roomNumber)
	if errors.Is(err, domain.ErrNotFound) {
		err = fmt.Errorf("room %d: %w", roomNumber, domain.ErrRoomUnavailable)
	}
	if err != nil {
		return domain.Booking{}, domain.Room{}, domain.Guest{}, err
	}
	if room.IsReserved {
		return domain.Booking{}, domain.Room{}, domain.Guest{}, fmt.Errorf("room %d: %w", roomNumber, domain.ErrRoomUnavailable)
	}

	guest, err := findGuestByExactName(ctx, s.auth, guestName)
	if errors.Is(err, domain.ErrNotFound) {
		guest, err = s.auth.Guests().Insert(ctx, domain.Guest{Name: guestName})
	}
	if err != nil {
		return domain.Booking{}, domain.Room{}, domain.Guest{}, err
	}

	room.IsReserved = true
	if err := s.auth.Rooms().Replace(ctx, room); err != nil {
		return domain.Booking{}, domain.Room{}, domain.Guest{}, err
	}

	booking, err := s.auth.Bookings().Insert(ctx, domain.Booking{
		RoomID:      room.RoomID,
		GuestID:     guest.GuestID,
		Nights:      nights,
		BookingDate: s.now(),
	})
	if err != nil {
		return domain.Booking{}, domain.Room{}, domain.Guest{}, err
	}
	return booking, room, guest, nil
}

// Cancel frees the booked room and hard-deletes the booking. The room is
// un-reserved before the booking row is removed, so a crash in between
// leaves a free room with a stale booking; that divergence is accepted.
// The booking id refers to the authoritative store; the mirror's own record
// is correlated through the room's business key.
func (s *Synchronizer) Cancel(ctx context.Context, bookingID int64) (Outcome, error) {
	if bookingID <= 0 {
		return Outcome{}, fmt.Errorf("%w: booking id must be positive", domain.ErrInvalidInput)
	}

	roomNumber, authErr := s.cancel(ctx, bookingID)
	out := s.outcome(ctx, "cancel", authErr, func() error {
		return s.cancelMirror(ctx, roomNumber)
	})
	return out, nil
}

// cancel returns the business key of the booked room so the mirror leg can
// correlate; 0 when the room record was already gone.
func (s *Synchronizer) cancel(ctx context.Context, bookingID int64) (int, error) {
	booking, err := s.auth.Bookings().GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}

	roomNumber := 0
	room, err := s.auth.Rooms().GetByID(ctx, booking.RoomID)
	switch {
	case err == nil:
		roomNumber = room.RoomNumber
		room.IsReserved = false
		if err := s.auth.Rooms().Replace(ctx, room); err != nil {
			return 0, err
		}
	case errors.Is(err, domain.ErrNotFound):
		// booking referenced a vanished room; still delete the booking
	default:
		return 0, err
	}

	if err := s.auth.Bookings().Delete(ctx, bookingID); err != nil {
		return 0, err
	}
	return roomNumber, nil
}

func (s *Synchronizer) cancelMirror(ctx context.Context, roomNumber int) error {
	if roomNumber == 0 {
		return fmt.Errorf("mirror booking: no room business key: %w", domain.ErrNotFound)
	}
	room, err := findRoomByNumber(ctx, s.mirror, roomNumber)
	if err != nil {
		return err
	}
	room.IsReserved = false
	if err := s.mirror.Rooms().Replace(ctx, room); err != nil {
		return err
	}

	bookings, err := s.mirror.Bookings().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if b.RoomID == room.RoomID {
			return s.mirror.Bookings().Delete(ctx, b.BookingID)
		}
	}
	return fmt.Errorf("mirror booking for room %d: %w", roomNumber, domain.ErrNotFound)
}

// AddReview records a guest's review of a room in both stores. The room must
// exist; the guest is created when unknown, like Reserve.
func (s *Synchronizer) AddReview(ctx context.Context, guestName string, roomNumber int, comment string, rating int) (domain.Review, Outcome, error) {
	guestName = strings.TrimSpace(guestName)
	comment = strings.TrimSpace(comment)
	if guestName == "" || len(guestName) > domain.MaxGuestNameLen {
		return domain.Review{}, Outcome{}, fmt.Errorf("%w: guest name must be 1-%d characters", domain.ErrInvalidInput, domain.MaxGuestNameLen)
	}
	if roomNumber <= 0 {
		return domain.Review{}, Outcome{}, fmt.Errorf("%w: room number must be positive", domain.ErrInvalidInput)
	}
	if comment == "" || len(comment) > domain.MaxCommentLen {
		return domain.Review{}, Outcome{}, fmt.Errorf("%w: comment must be 1-%d characters", domain.ErrInvalidInput, domain.MaxCommentLen)
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.Review{}, Outcome{}, fmt.Errorf("%w: rating must be %d-%d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	review, room, guest, authErr := s.addReview(ctx, guestName, roomNumber, comment, rating)
	out := s.outcome(ctx, "add_review", authErr, func() error {
		_, err := s.rec.Review(ctx, review, room, guest)
		return err
	})
	return review, out, nil
}

func (s *Synchronizer) addReview(ctx context.Context, guestName string, roomNumber int, comment string, rating int) (domain.Review, domain.Room, domain.Guest, error) {
	room, err := findRoomByNumber(ctx, s.auth, roomNumber)
	if err != nil {
		return domain.Review{}, domain.Room{}, domain.Guest{}, err
	}

	guest, err := findGuestByExactName(ctx, s.auth, guestName)
	if errors.Is(err, domain.ErrNotFound) {
		guest, err = s.auth.Guests().Insert(ctx, domain.Guest{Name: guestName})
	}
	if err != nil {
		return domain.Review{}, domain.Room{}, domain.Guest{}, err
	}

	review, err := s.auth.Reviews().Insert(ctx, domain.Review{
		RoomID:  room.RoomID,
		GuestID: guest.GuestID,
		Comment: comment,
		Rating:  rating,
	})
	if err != nil {
		return domain.Review{}, domain.Room{}, domain.Guest{}, err
	}
	return review, room, guest, nil
}

// business-key lookups scan the whole collection, matching the snapshot
// semantics of the stores

func findRoomByNumber(ctx context.Context, st domain.Store, number int) (domain.Room, error) {
	rooms, err := st.Rooms().GetAll(ctx)
	if err != nil {
		return domain.Room{}, err
	}
	for _, r := range rooms {
		if r.RoomNumber == number {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}

func findGuestByExactName(ctx context.Context, st domain.Store, name string) (domain.Guest, error) {
	guests, err := st.Guests().GetAll(ctx)
	if err != nil {
		return domain.Guest{}, err
	}
	for _, g := range guests {
		if sameGuestName(g.Name, name) {
			return g, nil
		}
	}
	return domain.Guest{}, domain.ErrNotFound
}

func (s *Synchronizer) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, st := range []string{s.auth.Name(), s.mirror.Name()} {
		_ = s.cache.Del(ctx, "topguest:"+st)
		_ = s.cache.Del(ctx, "rooms:"+st)
		_ = s.cache.Del(ctx, "reviews:"+st)
	}
}

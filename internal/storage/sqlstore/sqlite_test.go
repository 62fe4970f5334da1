package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"silaf_hotel/internal/domain"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotel.db")
	st, err := Open(context.Background(), DriverSQLite, SQLiteDSN(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteRoomCRUD(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	room, err := st.Rooms().Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 150})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if room.RoomID != 1 {
		t.Fatalf("key = %d, want 1", room.RoomID)
	}

	got, err := st.Rooms().GetByID(ctx, room.RoomID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RoomNumber != 101 || got.DailyRate != 150 || got.IsReserved {
		t.Fatalf("room = %+v", got)
	}

	got.IsReserved = true
	got.DailyRate = 175
	if err := st.Rooms().Replace(ctx, got); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err = st.Rooms().GetByID(ctx, room.RoomID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsReserved || got.DailyRate != 175 {
		t.Fatalf("room after replace = %+v", got)
	}

	if err := st.Rooms().Delete(ctx, room.RoomID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Rooms().GetByID(ctx, room.RoomID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteDuplicateRoomNumberRejected(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	if _, err := st.Rooms().Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 150}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := st.Rooms().Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 200}); err == nil {
		t.Fatal("duplicate room_number accepted")
	}
}

func TestSQLiteBookingDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	room, err := st.Rooms().Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 150})
	if err != nil {
		t.Fatalf("Insert room: %v", err)
	}
	guest, err := st.Guests().Insert(ctx, domain.Guest{Name: "Maria"})
	if err != nil {
		t.Fatalf("Insert guest: %v", err)
	}

	when := time.Date(2026, 3, 9, 12, 30, 15, 123456789, time.UTC)
	booking, err := st.Bookings().Insert(ctx, domain.Booking{
		RoomID:      room.RoomID,
		GuestID:     guest.GuestID,
		Nights:      2,
		BookingDate: when,
	})
	if err != nil {
		t.Fatalf("Insert booking: %v", err)
	}

	got, err := st.Bookings().GetByID(ctx, booking.BookingID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.BookingDate.Equal(when) {
		t.Fatalf("date = %v, want %v", got.BookingDate, when)
	}
	if got.RoomID != room.RoomID || got.GuestID != guest.GuestID || got.Nights != 2 {
		t.Fatalf("booking = %+v", got)
	}
}

func TestSQLiteForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	if _, err := st.Bookings().Insert(ctx, domain.Booking{
		RoomID: 999, GuestID: 999, Nights: 1, BookingDate: time.Now(),
	}); err == nil {
		t.Fatal("booking with dangling foreign keys accepted")
	}
}

func TestSQLiteDeleteRoomCascadesBookings(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	room, err := st.Rooms().Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 150})
	if err != nil {
		t.Fatalf("Insert room: %v", err)
	}
	guest, err := st.Guests().Insert(ctx, domain.Guest{Name: "Maria"})
	if err != nil {
		t.Fatalf("Insert guest: %v", err)
	}
	booking, err := st.Bookings().Insert(ctx, domain.Booking{
		RoomID: room.RoomID, GuestID: guest.GuestID, Nights: 2, BookingDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("Insert booking: %v", err)
	}

	if err := st.Rooms().Delete(ctx, room.RoomID); err != nil {
		t.Fatalf("Delete room: %v", err)
	}
	if _, err := st.Bookings().GetByID(ctx, booking.BookingID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want cascade-deleted booking", err)
	}
}

func TestSQLiteReplaceAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	if err := st.Guests().Replace(ctx, domain.Guest{GuestID: 99, Name: "Ghost"}); err != nil {
		t.Fatalf("Replace absent: %v", err)
	}
	if err := st.Guests().Delete(ctx, 99); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	guests, err := st.Guests().GetAll(ctx)
	if err != nil || len(guests) != 0 {
		t.Fatalf("guests = %v, %v", guests, err)
	}
}

func TestSQLiteGetAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	st := openSQLite(t)

	for n := 103; n >= 101; n-- {
		if _, err := st.Rooms().Insert(ctx, domain.Room{RoomNumber: n, DailyRate: 100}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	rooms, err := st.Rooms().GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("rooms = %d, want 3", len(rooms))
	}
	for i := 1; i < len(rooms); i++ {
		if rooms[i-1].RoomID > rooms[i].RoomID {
			t.Fatalf("rooms out of id order: %+v", rooms)
		}
	}
}

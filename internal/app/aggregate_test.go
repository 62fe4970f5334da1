package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"silaf_hotel/internal/app"
	"silaf_hotel/internal/domain"
)

func seedBooking(t *testing.T, st *memStore, guestID, roomID int64, nights int) {
	t.Helper()
	_, err := st.bookings.Insert(context.Background(), domain.Booking{
		RoomID:      roomID,
		GuestID:     guestID,
		Nights:      nights,
		BookingDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
}

func TestHighestPayingGuest_SumsNightsTimesRate(t *testing.T) {
	ctx := context.Background()
	st := newMemStore("sql")

	cheap, _ := st.rooms.Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 100})
	dear, _ := st.rooms.Insert(ctx, domain.Room{RoomNumber: 102, DailyRate: 500})
	g1, _ := st.guests.Insert(ctx, domain.Guest{Name: "Ana"})
	g2, _ := st.guests.Insert(ctx, domain.Guest{Name: "Bo"})

	// Ana: 3 nights at $100 = $300. Bo: 1 night at $500 = $500.
	seedBooking(t, st, g1.GuestID, cheap.RoomID, 3)
	seedBooking(t, st, g2.GuestID, dear.RoomID, 1)

	top, err := app.HighestPayingGuest(ctx, st)
	if err != nil {
		t.Fatalf("HighestPayingGuest: %v", err)
	}
	if top.Guest.GuestID != g2.GuestID || top.Total != 500 {
		t.Fatalf("top = %+v, want Bo at 500", top)
	}
}

func TestHighestPayingGuest_NoBookings(t *testing.T) {
	_, err := app.HighestPayingGuest(context.Background(), newMemStore("sql"))
	if !errors.Is(err, domain.ErrNoResult) {
		t.Fatalf("err = %v, want ErrNoResult", err)
	}
}

func TestHighestPayingGuest_TieBreaksOnLowestID(t *testing.T) {
	ctx := context.Background()
	st := newMemStore("sql")

	room, _ := st.rooms.Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 100})
	g1, _ := st.guests.Insert(ctx, domain.Guest{Name: "Ana"})
	g2, _ := st.guests.Insert(ctx, domain.Guest{Name: "Bo"})

	seedBooking(t, st, g2.GuestID, room.RoomID, 2)
	seedBooking(t, st, g1.GuestID, room.RoomID, 2)

	top, err := app.HighestPayingGuest(ctx, st)
	if err != nil {
		t.Fatalf("HighestPayingGuest: %v", err)
	}
	if top.Guest.GuestID != g1.GuestID {
		t.Fatalf("tie went to guest %d, want lowest id %d", top.Guest.GuestID, g1.GuestID)
	}
}

func TestHighestPayingGuest_UnresolvableRoomContributesZero(t *testing.T) {
	ctx := context.Background()
	st := newMemStore("sql")

	room, _ := st.rooms.Insert(ctx, domain.Room{RoomNumber: 101, DailyRate: 100})
	g1, _ := st.guests.Insert(ctx, domain.Guest{Name: "Ana"})
	g2, _ := st.guests.Insert(ctx, domain.Guest{Name: "Bo"})

	seedBooking(t, st, g1.GuestID, room.RoomID, 1)
	seedBooking(t, st, g2.GuestID, 999, 10) // dangling room reference

	top, err := app.HighestPayingGuest(ctx, st)
	if err != nil {
		t.Fatalf("HighestPayingGuest: %v", err)
	}
	if top.Guest.GuestID != g1.GuestID || top.Total != 100 {
		t.Fatalf("top = %+v, want Ana at 100", top)
	}
}

func TestHighestPayingGuest_AllTotalsZero(t *testing.T) {
	ctx := context.Background()
	st := newMemStore("sql")

	g, _ := st.guests.Insert(ctx, domain.Guest{Name: "Ana"})
	seedBooking(t, st, g.GuestID, 999, 10)

	_, err := app.HighestPayingGuest(ctx, st)
	if !errors.Is(err, domain.ErrNoResult) {
		t.Fatalf("err = %v, want ErrNoResult", err)
	}
}

func TestFindGuestByName(t *testing.T) {
	ctx := context.Background()
	st := newMemStore("sql")

	first, _ := st.guests.Insert(ctx, domain.Guest{Name: "Ana Smith"})
	if _, err := st.guests.Insert(ctx, domain.Guest{Name: "Mariana Lopez"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := app.FindGuestByName(ctx, st, "ana")
	if err != nil {
		t.Fatalf("FindGuestByName: %v", err)
	}
	if got.GuestID != first.GuestID {
		t.Fatalf("got %+v, want first match in storage order", got)
	}

	if _, err := app.FindGuestByName(ctx, st, "zz"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := app.FindGuestByName(ctx, st, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

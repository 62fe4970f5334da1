package app

import (
	"context"
	"fmt"
	"strings"

	"silaf_hotel/internal/domain"
)

// TopGuest is the result of the highest-paying-guest aggregation.
type TopGuest struct {
	Guest domain.Guest `json:"guest"`
	Total float64      `json:"total"`
}

// HighestPayingGuest joins every booking to its room (for the daily rate)
// and groups totals by guest: total = Σ nights × rate. A booking whose room
// cannot be resolved contributes 0. It works identically over either store;
// given consistent data the two stores agree.
//
// Ties are broken towards the lowest guest id so results are deterministic
// regardless of each store's native enumeration order. ErrNoResult is
// returned when there are no bookings or the maximum total is not strictly
// positive.
func HighestPayingGuest(ctx context.Context, st domain.Store) (TopGuest, error) {
	bookings, err := st.Bookings().GetAll(ctx)
	if err != nil {
		return TopGuest{}, err
	}
	if len(bookings) == 0 {
		return TopGuest{}, domain.ErrNoResult
	}
	rooms, err := st.Rooms().GetAll(ctx)
	if err != nil {
		return TopGuest{}, err
	}
	guests, err := st.Guests().GetAll(ctx)
	if err != nil {
		return TopGuest{}, err
	}

	rateByRoom := make(map[int64]float64, len(rooms))
	for _, r := range rooms {
		rateByRoom[r.RoomID] = r.DailyRate
	}
	totals := make(map[int64]float64)
	for _, b := range bookings {
		totals[b.GuestID] += float64(b.Nights) * rateByRoom[b.RoomID]
	}

	var bestID int64
	best := 0.0
	for id, total := range totals {
		if total > best || (total == best && best > 0 && id < bestID) {
			bestID, best = id, total
		}
	}
	if best <= 0 {
		return TopGuest{}, domain.ErrNoResult
	}
	for _, g := range guests {
		if g.GuestID == bestID {
			return TopGuest{Guest: g, Total: best}, nil
		}
	}
	// winning guest record is missing from this store's snapshot
	return TopGuest{}, domain.ErrNoResult
}

// FindGuestByName returns the first guest, in storage order, whose name
// contains the query (case-insensitive).
func FindGuestByName(ctx context.Context, st domain.Store, query string) (domain.Guest, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return domain.Guest{}, fmt.Errorf("%w: empty name query", domain.ErrInvalidInput)
	}
	guests, err := st.Guests().GetAll(ctx)
	if err != nil {
		return domain.Guest{}, err
	}
	for _, g := range guests {
		if strings.Contains(strings.ToLower(g.Name), query) {
			return g, nil
		}
	}
	return domain.Guest{}, domain.ErrNotFound
}

package domain

import "time"

// Field bounds shared by validation in the app layer and the relational schema.
const (
	MaxGuestNameLen = 100
	MaxCommentLen   = 500
	MinRating       = 1
	MaxRating       = 5
)

// Room surrogate keys are store-local: the same physical room can carry a
// different RoomID in each store. RoomNumber is the business key used to
// correlate across stores.
type Room struct {
	RoomID     int64   `json:"room_id"`
	RoomNumber int     `json:"room_number"`
	DailyRate  float64 `json:"daily_rate"`
	IsReserved bool    `json:"is_reserved"`
}

// Guest names act as a de-facto business key: lookups are case-insensitive
// on the trimmed name, and no store should hold two guests whose names match
// under that comparison.
type Guest struct {
	GuestID int64  `json:"guest_id"`
	Name    string `json:"name"`
}

type Booking struct {
	BookingID   int64     `json:"booking_id"`
	RoomID      int64     `json:"room_id"`
	GuestID     int64     `json:"guest_id"`
	Nights      int       `json:"nights"`
	BookingDate time.Time `json:"booking_date"`
}

type Review struct {
	ReviewID int64  `json:"review_id"`
	RoomID   int64  `json:"room_id"`
	GuestID  int64  `json:"guest_id"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
}

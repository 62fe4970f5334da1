package sqlstore

// Placeholders are `?` in both supported dialects; only the DDL differs.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
  room_id     INTEGER PRIMARY KEY AUTOINCREMENT,
  room_number INTEGER NOT NULL UNIQUE,
  daily_rate  REAL    NOT NULL,
  is_reserved INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS guests (
  guest_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name     TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS bookings (
  booking_id   INTEGER PRIMARY KEY AUTOINCREMENT,
  room_id      INTEGER NOT NULL REFERENCES rooms(room_id)   ON DELETE CASCADE,
  guest_id     INTEGER NOT NULL REFERENCES guests(guest_id) ON DELETE CASCADE,
  nights       INTEGER NOT NULL,
  booking_date TEXT    NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS reviews (
  review_id INTEGER PRIMARY KEY AUTOINCREMENT,
  room_id   INTEGER NOT NULL REFERENCES rooms(room_id)   ON DELETE CASCADE,
  guest_id  INTEGER NOT NULL REFERENCES guests(guest_id) ON DELETE CASCADE,
  comment   TEXT    NOT NULL,
  rating    INTEGER NOT NULL
)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
  room_id     BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  room_number INT    NOT NULL,
  daily_rate  DOUBLE NOT NULL,
  is_reserved TINYINT(1) NOT NULL DEFAULT 0,
  UNIQUE KEY uq_rooms_number (room_number)
) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS guests (
  guest_id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name     VARCHAR(100) NOT NULL
) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bookings (
  booking_id   BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  room_id      BIGINT NOT NULL,
  guest_id     BIGINT NOT NULL,
  nights       INT    NOT NULL,
  booking_date VARCHAR(40) NOT NULL,
  CONSTRAINT fk_bookings_room  FOREIGN KEY (room_id)  REFERENCES rooms(room_id)   ON DELETE CASCADE,
  CONSTRAINT fk_bookings_guest FOREIGN KEY (guest_id) REFERENCES guests(guest_id) ON DELETE CASCADE
) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS reviews (
  review_id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  room_id   BIGINT NOT NULL,
  guest_id  BIGINT NOT NULL,
  comment   VARCHAR(500) NOT NULL,
  rating    INT NOT NULL,
  CONSTRAINT fk_reviews_room  FOREIGN KEY (room_id)  REFERENCES rooms(room_id)   ON DELETE CASCADE,
  CONSTRAINT fk_reviews_guest FOREIGN KEY (guest_id) REFERENCES guests(guest_id) ON DELETE CASCADE
) ENGINE=InnoDB`,
}

const (
	selectRoomsSQL    = `SELECT room_id, room_number, daily_rate, is_reserved FROM rooms ORDER BY room_id`
	selectRoomByIDSQL = `SELECT room_id, room_number, daily_rate, is_reserved FROM rooms WHERE room_id = ?`
	insertRoomSQL     = `INSERT INTO rooms (room_number, daily_rate, is_reserved) VALUES (?, ?, ?)`
	updateRoomSQL     = `UPDATE rooms SET room_number = ?, daily_rate = ?, is_reserved = ? WHERE room_id = ?`
	deleteRoomSQL     = `DELETE FROM rooms WHERE room_id = ?`

	selectGuestsSQL    = `SELECT guest_id, name FROM guests ORDER BY guest_id`
	selectGuestByIDSQL = `SELECT guest_id, name FROM guests WHERE guest_id = ?`
	insertGuestSQL     = `INSERT INTO guests (name) VALUES (?)`
	updateGuestSQL     = `UPDATE guests SET name = ? WHERE guest_id = ?`
	deleteGuestSQL     = `DELETE FROM guests WHERE guest_id = ?`

	selectBookingsSQL    = `SELECT booking_id, room_id, guest_id, nights, booking_date FROM bookings ORDER BY booking_id`
	selectBookingByIDSQL = `SELECT booking_id, room_id, guest_id, nights, booking_date FROM bookings WHERE booking_id = ?`
	insertBookingSQL     = `INSERT INTO bookings (room_id, guest_id, nights, booking_date) VALUES (?, ?, ?, ?)`
	updateBookingSQL     = `UPDATE bookings SET room_id = ?, guest_id = ?, nights = ?, booking_date = ? WHERE booking_id = ?`
	deleteBookingSQL     = `DELETE FROM bookings WHERE booking_id = ?`

	selectReviewsSQL    = `SELECT review_id, room_id, guest_id, comment, rating FROM reviews ORDER BY review_id`
	selectReviewByIDSQL = `SELECT review_id, room_id, guest_id, comment, rating FROM reviews WHERE review_id = ?`
	insertReviewSQL     = `INSERT INTO reviews (room_id, guest_id, comment, rating) VALUES (?, ?, ?, ?)`
	updateReviewSQL     = `UPDATE reviews SET room_id = ?, guest_id = ?, comment = ?, rating = ? WHERE review_id = ?`
	deleteReviewSQL     = `DELETE FROM reviews WHERE review_id = ?`
)

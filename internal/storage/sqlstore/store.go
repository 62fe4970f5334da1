// Package sqlstore is the relational snapshot store, the authoritative
// backend. It runs over database/sql with either the pure-Go sqlite driver
// (local default) or the MySQL driver for a networked deployment.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"silaf_hotel/internal/adapters/observability"
	"silaf_hotel/internal/domain"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	defaultPingAttempts = 5
)

// Booking dates are persisted as RFC3339 text so both dialects round-trip
// identically without driver-specific time handling.
const timeLayout = time.RFC3339Nano

type Store struct {
	db       *sql.DB
	name     string
	rl       *rate.Limiter // nil for local stores
	attempts int
}

type Option func(*Store)

// WithPingAttempts bounds the connect-time ping retry; useful when a
// networked database needs longer to come up than the default allows.
func WithPingAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithRateLimit paces store operations; meant for network-backed deployments
// where the database is an external collaborator.
func WithRateLimit(rps int) Option {
	return func(s *Store) {
		if rps > 0 {
			s.rl = rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}

// SQLiteDSN builds a DSN for a database file, with foreign keys enforced on
// every pooled connection.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)"
}

// Open connects, verifies the connection with a bounded retry, and ensures
// the schema exists.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	s := &Store{db: db, name: driver, attempts: defaultPingAttempts}
	for _, o := range opts {
		o(s)
	}

	for i := 1; ; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		if i == s.attempts {
			_ = db.Close()
			return nil, fmt.Errorf("ping %s: %w", driver, err)
		}
		select {
		case <-time.After(time.Duration(i) * 200 * time.Millisecond):
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		}
	}

	schema := sqliteSchema
	if driver == DriverMySQL {
		schema = mysqlSchema
	}
	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Name() string                  { return s.name }
func (s *Store) Rooms() domain.RoomStore       { return roomStore{s} }
func (s *Store) Guests() domain.GuestStore     { return guestStore{s} }
func (s *Store) Bookings() domain.BookingStore { return bookingStore{s} }
func (s *Store) Reviews() domain.ReviewStore   { return reviewStore{s} }

func (s *Store) wait(ctx context.Context) error {
	if s.rl == nil {
		return nil
	}
	return s.rl.Wait(ctx)
}

// ---- rooms ----

type roomStore struct{ s *Store }

func (r roomStore) GetAll(ctx context.Context) (out []domain.Room, err error) {
	defer func() { observability.ObserveStore(r.s.name, "room", "get_all", err) }()
	if err = r.s.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := r.s.db.QueryContext(ctx, selectRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rm domain.Room
		if err = rows.Scan(&rm.RoomID, &rm.RoomNumber, &rm.DailyRate, &rm.IsReserved); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	err = rows.Err()
	return out, err
}

func (r roomStore) GetByID(ctx context.Context, id int64) (rm domain.Room, err error) {
	defer func() { observability.ObserveStore(r.s.name, "room", "get_by_id", err) }()
	if err = r.s.wait(ctx); err != nil {
		return rm, err
	}
	row := r.s.db.QueryRowContext(ctx, selectRoomByIDSQL, id)
	if err = row.Scan(&rm.RoomID, &rm.RoomNumber, &rm.DailyRate, &rm.IsReserved); err != nil {
		if err == sql.ErrNoRows {
			err = domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	return rm, nil
}

func (r roomStore) Insert(ctx context.Context, rm domain.Room) (out domain.Room, err error) {
	defer func() { observability.ObserveStore(r.s.name, "room", "insert", err) }()
	if err = r.s.wait(ctx); err != nil {
		return out, err
	}
	res, err := r.s.db.ExecContext(ctx, insertRoomSQL, rm.RoomNumber, rm.DailyRate, rm.IsReserved)
	if err != nil {
		return out, err
	}
	rm.RoomID, err = res.LastInsertId()
	return rm, err
}

func (r roomStore) Replace(ctx context.Context, rm domain.Room) (err error) {
	defer func() { observability.ObserveStore(r.s.name, "room", "replace", err) }()
	if err = r.s.wait(ctx); err != nil {
		return err
	}
	// absent key updates zero rows, which is the intended no-op
	_, err = r.s.db.ExecContext(ctx, updateRoomSQL, rm.RoomNumber, rm.DailyRate, rm.IsReserved, rm.RoomID)
	return err
}

func (r roomStore) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observability.ObserveStore(r.s.name, "room", "delete", err) }()
	if err = r.s.wait(ctx); err != nil {
		return err
	}
	_, err = r.s.db.ExecContext(ctx, deleteRoomSQL, id)
	return err
}

// ---- guests ----

type guestStore struct{ s *Store }

func (g guestStore) GetAll(ctx context.Context) (out []domain.Guest, err error) {
	defer func() { observability.ObserveStore(g.s.name, "guest", "get_all", err) }()
	if err = g.s.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := g.s.db.QueryContext(ctx, selectGuestsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var gu domain.Guest
		if err = rows.Scan(&gu.GuestID, &gu.Name); err != nil {
			return nil, err
		}
		out = append(out, gu)
	}
	err = rows.Err()
	return out, err
}

func (g guestStore) GetByID(ctx context.Context, id int64) (gu domain.Guest, err error) {
	defer func() { observability.ObserveStore(g.s.name, "guest", "get_by_id", err) }()
	if err = g.s.wait(ctx); err != nil {
		return gu, err
	}
	row := g.s.db.QueryRowContext(ctx, selectGuestByIDSQL, id)
	if err = row.Scan(&gu.GuestID, &gu.Name); err != nil {
		if err == sql.ErrNoRows {
			err = domain.ErrNotFound
		}
		return domain.Guest{}, err
	}
	return gu, nil
}

func (g guestStore) Insert(ctx context.Context, gu domain.Guest) (out domain.Guest, err error) {
	defer func() { observability.ObserveStore(g.s.name, "guest", "insert", err) }()
	if err = g.s.wait(ctx); err != nil {
		return out, err
	}
	res, err := g.s.db.ExecContext(ctx, insertGuestSQL, gu.Name)
	if err != nil {
		return out, err
	}
	gu.GuestID, err = res.LastInsertId()
	return gu, err
}

func (g guestStore) Replace(ctx context.Context, gu domain.Guest) (err error) {
	defer func() { observability.ObserveStore(g.s.name, "guest", "replace", err) }()
	if err = g.s.wait(ctx); err != nil {
		return err
	}
	_, err = g.s.db.ExecContext(ctx, updateGuestSQL, gu.Name, gu.GuestID)
	return err
}

func (g guestStore) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observability.ObserveStore(g.s.name, "guest", "delete", err) }()
	if err = g.s.wait(ctx); err != nil {
		return err
	}
	_, err = g.s.db.ExecContext(ctx, deleteGuestSQL, id)
	return err
}

// ---- bookings ----

type bookingStore struct{ s *Store }

func (b bookingStore) GetAll(ctx context.Context) (out []domain.Booking, err error) {
	defer func() { observability.ObserveStore(b.s.name, "booking", "get_all", err) }()
	if err = b.s.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := b.s.db.QueryContext(ctx, selectBookingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var bk domain.Booking
		var when string
		if err = rows.Scan(&bk.BookingID, &bk.RoomID, &bk.GuestID, &bk.Nights, &when); err != nil {
			return nil, err
		}
		if bk.BookingDate, err = time.Parse(timeLayout, when); err != nil {
			return nil, fmt.Errorf("booking %d: bad booking_date %q: %w", bk.BookingID, when, err)
		}
		out = append(out, bk)
	}
	err = rows.Err()
	return out, err
}

func (b bookingStore) GetByID(ctx context.Context, id int64) (bk domain.Booking, err error) {
	defer func() { observability.ObserveStore(b.s.name, "booking", "get_by_id", err) }()
	if err = b.s.wait(ctx); err != nil {
		return bk, err
	}
	row := b.s.db.QueryRowContext(ctx, selectBookingByIDSQL, id)
	var when string
	if err = row.Scan(&bk.BookingID, &bk.RoomID, &bk.GuestID, &bk.Nights, &when); err != nil {
		if err == sql.ErrNoRows {
			err = domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	if bk.BookingDate, err = time.Parse(timeLayout, when); err != nil {
		return domain.Booking{}, fmt.Errorf("booking %d: bad booking_date %q: %w", id, when, err)
	}
	return bk, nil
}

func (b bookingStore) Insert(ctx context.Context, bk domain.Booking) (out domain.Booking, err error) {
	defer func() { observability.ObserveStore(b.s.name, "booking", "insert", err) }()
	if err = b.s.wait(ctx); err != nil {
		return out, err
	}
	res, err := b.s.db.ExecContext(ctx, insertBookingSQL,
		bk.RoomID, bk.GuestID, bk.Nights, bk.BookingDate.UTC().Format(timeLayout))
	if err != nil {
		return out, err
	}
	bk.BookingID, err = res.LastInsertId()
	return bk, err
}

func (b bookingStore) Replace(ctx context.Context, bk domain.Booking) (err error) {
	defer func() { observability.ObserveStore(b.s.name, "booking", "replace", err) }()
	if err = b.s.wait(ctx); err != nil {
		return err
	}
	_, err = b.s.db.ExecContext(ctx, updateBookingSQL,
		bk.RoomID, bk.GuestID, bk.Nights, bk.BookingDate.UTC().Format(timeLayout), bk.BookingID)
	return err
}

func (b bookingStore) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observability.ObserveStore(b.s.name, "booking", "delete", err) }()
	if err = b.s.wait(ctx); err != nil {
		return err
	}
	_, err = b.s.db.ExecContext(ctx, deleteBookingSQL, id)
	return err
}

// ---- reviews ----

type reviewStore struct{ s *Store }

func (v reviewStore) GetAll(ctx context.Context) (out []domain.Review, err error) {
	defer func() { observability.ObserveStore(v.s.name, "review", "get_all", err) }()
	if err = v.s.wait(ctx); err != nil {
		return nil, err
	}
	rows, err := v.s.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rv domain.Review
		if err = rows.Scan(&rv.ReviewID, &rv.RoomID, &rv.GuestID, &rv.Comment, &rv.Rating); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	err = rows.Err()
	return out, err
}

func (v reviewStore) GetByID(ctx context.Context, id int64) (rv domain.Review, err error) {
	defer func() { observability.ObserveStore(v.s.name, "review", "get_by_id", err) }()
	if err = v.s.wait(ctx); err != nil {
		return rv, err
	}
	row := v.s.db.QueryRowContext(ctx, selectReviewByIDSQL, id)
	if err = row.Scan(&rv.ReviewID, &rv.RoomID, &rv.GuestID, &rv.Comment, &rv.Rating); err != nil {
		if err == sql.ErrNoRows {
			err = domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	return rv, nil
}

func (v reviewStore) Insert(ctx context.Context, rv domain.Review) (out domain.Review, err error) {
	defer func() { observability.ObserveStore(v.s.name, "review", "insert", err) }()
	if err = v.s.wait(ctx); err != nil {
		return out, err
	}
	res, err := v.s.db.ExecContext(ctx, insertReviewSQL, rv.RoomID, rv.GuestID, rv.Comment, rv.Rating)
	if err != nil {
		return out, err
	}
	rv.ReviewID, err = res.LastInsertId()
	return rv, err
}

func (v reviewStore) Replace(ctx context.Context, rv domain.Review) (err error) {
	defer func() { observability.ObserveStore(v.s.name, "review", "replace", err) }()
	if err = v.s.wait(ctx); err != nil {
		return err
	}
	_, err = v.s.db.ExecContext(ctx, updateReviewSQL, rv.RoomID, rv.GuestID, rv.Comment, rv.Rating, rv.ReviewID)
	return err
}

func (v reviewStore) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observability.ObserveStore(v.s.name, "review", "delete", err) }()
	if err = v.s.wait(ctx); err != nil {
		return err
	}
	_, err = v.s.db.ExecContext(ctx, deleteReviewSQL, id)
	return err
}

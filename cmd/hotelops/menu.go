package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"silaf_hotel/internal/app"
	"silaf_hotel/internal/domain"
)

// menu is the interactive console. Every command reports per-store status
// and errors are swallowed at this boundary; the session never terminates
// because of a data-layer failure.
type menu struct {
	in      *bufio.Reader
	sync    *app.Synchronizer
	queries *app.QueryService // authoritative reads
	mirror  *app.QueryService
}

func (m *menu) run(ctx context.Context) {
	m.in = bufio.NewReader(os.Stdin)
	for {
		fmt.Println()
		fmt.Println("==== Silaf Hotel Operations ====")
		fmt.Println("1. Add room")
		fmt.Println("2. List rooms")
		fmt.Println("3. Reserve room")
		fmt.Println("4. Cancel booking")
		fmt.Println("5. Find guest by name")
		fmt.Println("6. Highest-paying guest")
		fmt.Println("7. Add review")
		fmt.Println("8. List reviews")
		fmt.Println("9. List bookings")
		fmt.Println("0. Exit")

		choice, err := m.prompt("Select an option: ")
		if err != nil {
			return // stdin closed
		}
		switch choice {
		case "1":
			m.addRoom(ctx)
		case "2":
			m.listRooms(ctx)
		case "3":
			m.reserve(ctx)
		case "4":
			m.cancel(ctx)
		case "5":
			m.findGuest(ctx)
		case "6":
			m.topGuest(ctx)
		case "7":
			m.addReview(ctx)
		case "8":
			m.listReviews(ctx)
		case "9":
			m.listBookings(ctx)
		case "0":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

func (m *menu) promptFloat(label string) (float64, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

func printOutcome(out app.Outcome) {
	for _, st := range []app.StoreStatus{out.Authoritative, out.Mirror} {
		switch {
		case st.OK():
			fmt.Printf("  [%s] ok\n", st.Store)
		case st.Err != nil:
			fmt.Printf("  [%s] failed: %v\n", st.Store, st.Err)
		default:
			fmt.Printf("  [%s] skipped\n", st.Store)
		}
	}
}

func (m *menu) addRoom(ctx context.Context) {
	number, err := m.promptInt("Room number: ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	rate, err := m.promptFloat("Daily rate: ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	room, out, err := m.sync.AddRoom(ctx, number, rate)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if out.Authoritative.OK() {
		fmt.Printf("Room %d added (id %d).\n", room.RoomNumber, room.RoomID)
	}
	printOutcome(out)
}

func renderRooms(w io.Writer, rooms []domain.Room) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Room", "Rate", "Status")
	for _, r := range rooms {
		status := "Available"
		if r.IsReserved {
			status = "Reserved"
		}
		table.Append([]string{
			strconv.FormatInt(r.RoomID, 10),
			strconv.Itoa(r.RoomNumber),
			fmt.Sprintf("$%.2f", r.DailyRate),
			status,
		})
	}
	table.Render()
}

func (m *menu) listRooms(ctx context.Context) {
	for _, q := range []*app.QueryService{m.queries, m.mirror} {
		rooms, err := q.ListRooms(ctx)
		if err != nil {
			fmt.Printf("  [%s] failed: %v\n", q.Store(), err)
			continue
		}
		fmt.Printf("--- Rooms (%s) ---\n", q.Store())
		renderRooms(os.Stdout, rooms)
	}
}

func (m *menu) reserve(ctx context.Context) {
	name, err := m.prompt("Guest name: ")
	if err != nil {
		return
	}
	number, err := m.promptInt("Room number: ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	nights, err := m.promptInt("Nights: ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	booking, out, err := m.sync.Reserve(ctx, name, number, nights)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if out.Authoritative.OK() {
		fmt.Printf("Reserved: booking %d for %s.\n", booking.BookingID, name)
	}
	printOutcome(out)
}

func (m *menu) cancel(ctx context.Context) {
	id, err := m.promptInt("Booking id: ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	out, err := m.sync.Cancel(ctx, int64(id))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	printOutcome(out)
}

func (m *menu) findGuest(ctx context.Context) {
	q, err := m.prompt("Guest name (or part of it): ")
	if err != nil {
		return
	}
	guest, err := m.queries.FindGuest(ctx, q)
	if err != nil {
		fmt.Println("Guest not found.")
		return
	}
	fmt.Printf("Found guest: %s (id %d)\n", guest.Name, guest.GuestID)
}

// topGuest computes the aggregate over both stores; given consistent data
// the totals agree, and a mismatch makes divergence visible.
func (m *menu) topGuest(ctx context.Context) {
	for _, q := range []*app.QueryService{m.queries, m.mirror} {
		top, err := q.HighestPayingGuest(ctx)
		if err != nil {
			fmt.Printf("  [%s] no result (%v)\n", q.Store(), err)
			continue
		}
		fmt.Printf("  [%s] highest-paying guest: %s (total $%.2f)\n", q.Store(), top.Guest.Name, top.Total)
	}
}

func (m *menu) addReview(ctx context.Context) {
	name, err := m.prompt("Guest name: ")
	if err != nil {
		return
	}
	number, err := m.promptInt("Room number: ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	comment, err := m.prompt("Comment: ")
	if err != nil {
		return
	}
	rating, err := m.promptInt("Rating (1-5): ")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	_, out, err := m.sync.AddReview(ctx, name, number, comment, rating)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	printOutcome(out)
}

func renderReviews(w io.Writer, reviews []domain.Review, names map[int64]string, numbers map[int64]int) {
	table := tablewriter.NewWriter(w)
	table.Header("Guest", "Room", "Rating", "Comment")
	for _, v := range reviews {
		name := names[v.GuestID]
		if name == "" {
			name = "Unknown"
		}
		table.Append([]string{
			name,
			strconv.Itoa(numbers[v.RoomID]),
			strconv.Itoa(v.Rating),
			v.Comment,
		})
	}
	table.Render()
}

func (m *menu) listReviews(ctx context.Context) {
	for _, q := range []*app.QueryService{m.queries, m.mirror} {
		reviews, err := q.ListReviews(ctx)
		if err != nil {
			fmt.Printf("  [%s] failed: %v\n", q.Store(), err)
			continue
		}
		names, numbers := m.lookupTables(ctx, q)
		fmt.Printf("--- Reviews (%s) ---\n", q.Store())
		renderReviews(os.Stdout, reviews, names, numbers)
	}
}

func renderBookings(w io.Writer, bookings []domain.Booking, names map[int64]string, numbers map[int64]int) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Guest", "Room", "Nights", "Date")
	for _, b := range bookings {
		name := names[b.GuestID]
		if name == "" {
			name = "Unknown"
		}
		table.Append([]string{
			strconv.FormatInt(b.BookingID, 10),
			name,
			strconv.Itoa(numbers[b.RoomID]),
			strconv.Itoa(b.Nights),
			b.BookingDate.Format("2006-01-02"),
		})
	}
	table.Render()
}

// listBookings shows each store's bookings with their ids, which is what
// the cancel command asks for.
func (m *menu) listBookings(ctx context.Context) {
	for _, q := range []*app.QueryService{m.queries, m.mirror} {
		bookings, err := q.ListBookings(ctx)
		if err != nil {
			fmt.Printf("  [%s] failed: %v\n", q.Store(), err)
			continue
		}
		names, numbers := m.lookupTables(ctx, q)
		fmt.Printf("--- Bookings (%s) ---\n", q.Store())
		renderBookings(os.Stdout, bookings, names, numbers)
	}
}

// lookupTables builds the guest-name and room-number joins used by the
// listing views; lookup misses render as Unknown / 0.
func (m *menu) lookupTables(ctx context.Context, q *app.QueryService) (map[int64]string, map[int64]int) {
	guests, _ := q.ListGuests(ctx)
	rooms, _ := q.ListRooms(ctx)
	names := make(map[int64]string, len(guests))
	for _, g := range guests {
		names[g.GuestID] = g.Name
	}
	numbers := make(map[int64]int, len(rooms))
	for _, r := range rooms {
		numbers[r.RoomID] = r.RoomNumber
	}
	return names, numbers
}

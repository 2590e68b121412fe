// Interactive text menu over the ledger services
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/service"
)

var mainMenu = []string{
	"Add Booking",
	"View Bookings",
	"Checkout Customer",
	"Calculate Revenue",
	"Search Bookings",
	"Update Booking",
	"Feedback",
	"Export Data to CSV",
	"Exit",
}

var feedbackMenu = []string{
	"Leave Feedback",
	"View Feedback",
	"Back to Main Menu",
}

type Menu struct {
	bookings service.BookingService
	feedback service.FeedbackService
	export   service.ExportService
	in       *bufio.Reader
	out      io.Writer
	lines    chan inputLine
}

type inputLine struct {
	text string
	err  error
}

func NewMenu(bookings service.BookingService, feedback service.FeedbackService, export service.ExportService, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		bookings: bookings,
		feedback: feedback,
		export:   export,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run shows the main menu until Exit is chosen, input ends or ctx is done.
// A cancelled ctx interrupts a pending prompt and is returned as ctx.Err().
func (m *Menu) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	m.lines = make(chan inputLine)
	go m.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu("Hotel Accounting System", mainMenu)
		choice, ok := m.prompt(ctx, fmt.Sprintf("Choose an option (1-%d): ", len(mainMenu)))
		if !ok {
			return ctx.Err()
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.addBooking(ctx)
		case "2":
			m.viewBookings(ctx)
		case "3":
			m.checkout(ctx)
		case "4":
			m.calculateRevenue(ctx)
		case "5":
			m.searchBookings(ctx)
		case "6":
			m.updateBooking(ctx)
		case "7":
			if !m.feedbackLoop(ctx) {
				return ctx.Err()
			}
		case "8":
			m.exportData(ctx)
		case "9":
			m.println("Exiting the system. Have a great day!")
			return nil
		default:
			m.printf("Invalid choice. Please enter a number from 1 to %d.\n", len(mainMenu))
		}
	}
}

// feedbackLoop returns false when input ended inside the sub-menu.
func (m *Menu) feedbackLoop(ctx context.Context) bool {
	for {
		m.printMenu("Feedback Menu", feedbackMenu)
		choice, ok := m.prompt(ctx, fmt.Sprintf("Choose an option (1-%d): ", len(feedbackMenu)))
		if !ok {
			return false
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if !m.leaveFeedback(ctx) {
				return false
			}
		case "2":
			m.viewFeedback(ctx)
		case "3":
			return true
		default:
			m.printf("Invalid choice. Please enter a number from 1 to %d.\n", len(feedbackMenu))
		}
	}
}

func (m *Menu) addBooking(ctx context.Context) {
	name, ok := m.prompt(ctx, "Enter customer name: ")
	if !ok {
		return
	}
	room, ok := m.prompt(ctx, "Enter room number: ")
	if !ok {
		return
	}
	nights, ok := m.prompt(ctx, "Enter number of nights: ")
	if !ok {
		return
	}
	rate, ok := m.prompt(ctx, "Enter rate per night: ")
	if !ok {
		return
	}

	booking, err := m.bookings.AddBooking(ctx, &service.AddBookingRequest{
		CustomerName: name,
		RoomNumber:   room,
		Nights:       nights,
		RatePerNight: rate,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEmptyName):
			m.println("Invalid input. Customer name cannot be empty.")
		case errors.Is(err, entity.ErrInvalidInput):
			m.println("Invalid input. Please enter numeric values for room number, nights, and rate per night.")
		default:
			m.reportError(err)
		}
		return
	}
	m.printf("Booking added for %s in room %d.\n", booking.CustomerName, booking.RoomNumber)
}

func (m *Menu) viewBookings(ctx context.Context) {
	bookings, err := m.bookings.ListBookings(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyStore) {
			m.println("No bookings found.")
			return
		}
		m.reportError(err)
		return
	}
	for _, b := range bookings {
		m.printBooking(b)
	}
}

func (m *Menu) checkout(ctx context.Context) {
	name, ok := m.prompt(ctx, "Enter customer name for checkout: ")
	if !ok {
		return
	}
	if err := m.bookings.Checkout(ctx, name); err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			m.printf("No booking found for %s.\n", name)
			return
		}
		m.reportError(err)
		return
	}
	m.printf("Checked out %s.\n", name)
}

func (m *Menu) calculateRevenue(ctx context.Context) {
	revenue, err := m.bookings.CalculateRevenue(ctx)
	if err != nil {
		m.reportError(err)
		return
	}
	m.printf("Total Revenue: $%.2f\n", revenue)
}

func (m *Menu) searchBookings(ctx context.Context) {
	term, ok := m.prompt(ctx, "Enter customer name or room number to search: ")
	if !ok {
		return
	}
	bookings, err := m.bookings.SearchBookings(ctx, term)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyStore) {
			m.println("No bookings found for the search term.")
			return
		}
		m.reportError(err)
		return
	}
	for _, b := range bookings {
		m.printBooking(b)
	}
}

func (m *Menu) updateBooking(ctx context.Context) {
	name, ok := m.prompt(ctx, "Enter customer name to update booking: ")
	if !ok {
		return
	}

	current, err := m.bookings.GetBooking(ctx, name)
	if err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			m.printf("No booking found for %s.\n", name)
			return
		}
		m.reportError(err)
		return
	}

	m.println("Current booking details:")
	m.printBooking(current)

	nights, ok := m.prompt(ctx, "Enter new number of nights (or press Enter to keep current): ")
	if !ok {
		return
	}
	rate, ok := m.prompt(ctx, "Enter new rate per night (or press Enter to keep current): ")
	if !ok {
		return
	}

	_, err = m.bookings.UpdateBooking(ctx, name, &service.UpdateBookingRequest{
		Nights:       nights,
		RatePerNight: rate,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			m.println("Invalid input. Please enter numeric values.")
		case errors.Is(err, entity.ErrBookingNotFound):
			m.printf("No booking found for %s.\n", name)
		default:
			m.reportError(err)
		}
		return
	}
	m.printf("Booking updated for %s.\n", name)
}

// leaveFeedback re-prompts until the rating selector is valid. It returns
// false when input ended.
func (m *Menu) leaveFeedback(ctx context.Context) bool {
	name, ok := m.prompt(ctx, "Enter customer name to leave feedback: ")
	if !ok {
		return false
	}

	if _, err := m.bookings.GetBooking(ctx, name); err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			m.printf("No booking found for %s.\n", name)
			return true
		}
		m.reportError(err)
		return true
	}

	m.println("Please rate your stay with us:")
	for _, option := range entity.RatingOptions() {
		m.println(option)
	}

	var selector string
	for {
		selector, ok = m.prompt(ctx, "Enter your rating (1-4): ")
		if !ok {
			return false
		}
		if _, err := entity.RatingFromSelector(selector); err == nil {
			break
		}
		m.println("Invalid rating. Please enter a number from 1 to 4.")
	}

	comment, ok := m.prompt(ctx, "Enter your feedback: ")
	if !ok {
		return false
	}

	_, err := m.feedback.LeaveFeedback(ctx, name, &service.FeedbackRequest{
		Selector: selector,
		Comment:  comment,
	})
	if err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			m.printf("No booking found for %s.\n", name)
			return true
		}
		m.reportError(err)
		return true
	}
	m.println("Thank you for your feedback!")
	return true
}

func (m *Menu) viewFeedback(ctx context.Context) {
	bookings, err := m.feedback.ViewFeedback(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyStore) {
			m.println("No feedback found.")
			return
		}
		m.reportError(err)
		return
	}
	for _, b := range bookings {
		m.printf("\nCustomer: %s\n", b.CustomerName)
		m.printf("Rating: %s\n", b.Feedback.Rating)
		m.printf("Comment: %s\n", b.Feedback.Comment)
	}
}

func (m *Menu) exportData(ctx context.Context) {
	result, err := m.export.ExportCSV(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyStore) {
			m.println("No data to export.")
			return
		}
		m.reportError(err)
		return
	}
	m.printf("Data exported to %s successfully.\n", result.Path)
}

func (m *Menu) printBooking(b *entity.Booking) {
	m.printf("\nCustomer: %s\n", b.CustomerName)
	m.printf("  customer_name: %s\n", b.CustomerName)
	m.printf("  room_number: %d\n", b.RoomNumber)
	m.printf("  nights: %d\n", b.Nights)
	m.printf("  rate_per_night: %.2f\n", b.RatePerNight)
	m.printf("  total_charge: %.2f\n", b.TotalCharge)
	if b.Feedback != nil {
		m.printf("  feedback: %s (%s)\n", b.Feedback.Rating, b.Feedback.Comment)
	} else {
		m.println("  feedback: none")
	}
}

func (m *Menu) printMenu(title string, options []string) {
	m.printf("\n--- %s ---\n", title)
	for i, option := range options {
		m.printf("%d. %s\n", i+1, option)
	}
}

// readLines feeds m.lines from the input so a prompt can also wait on ctx.
// It stops after the first read error or once Run has returned.
func (m *Menu) readLines(done <-chan struct{}) {
	defer close(m.lines)
	for {
		text, err := m.in.ReadString('\n')
		select {
		case m.lines <- inputLine{text: text, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// prompt returns the next line without its line ending; false on EOF or
// when ctx is done.
func (m *Menu) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(m.out, label)

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.lines:
		if !ok {
			return "", false
		}
		if line.err != nil && (line.text == "" || !errors.Is(line.err, io.EOF)) {
			return "", false
		}
		return strings.TrimRight(line.text, "\r\n"), true
	}
}

func (m *Menu) reportError(err error) {
	logrus.WithError(err).Error("Operation failed")
	m.printf("Error: %v\n", err)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(line string) {
	fmt.Fprintln(m.out, line)
}

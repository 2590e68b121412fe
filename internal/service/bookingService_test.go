package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/database"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/pkg/storage"
)

type testEnv struct {
	dir      string
	ledger   string
	export   string
	bookings BookingService
	feedback FeedbackService
	exporter ExportService
}

// newTestEnv собирает сервисы поверх файлового хранилища во временной директории
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	files := storage.NewFileStorage(dir)
	store := NewStore(database.NewLedgerRepository(files, "hotel_data.json"))

	return &testEnv{
		dir:      dir,
		ledger:   filepath.Join(dir, "hotel_data.json"),
		export:   filepath.Join(dir, "hotel_data.csv"),
		bookings: NewBookingService(store),
		feedback: NewFeedbackService(store),
		exporter: NewExportService(store, files, "hotel_data.csv"),
	}
}

func (e *testEnv) add(t *testing.T, name, room, nights, rate string) *entity.Booking {
	t.Helper()
	b, err := e.bookings.AddBooking(context.Background(), &AddBookingRequest{
		CustomerName: name,
		RoomNumber:   room,
		Nights:       nights,
		RatePerNight: rate,
	})
	require.NoError(t, err)
	return b
}

func (e *testEnv) ledgerBytes(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(e.ledger)
	require.NoError(t, err)
	return data
}

func customerNames(bookings []*entity.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.CustomerName)
	}
	return out
}

func TestAddBookingThenList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.add(t, "Alice", "101", "3", "100.5")

	bookings, err := env.bookings.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Alice", bookings[0].CustomerName)
	assert.Equal(t, 101, bookings[0].RoomNumber)
	assert.InDelta(t, 3*100.5, bookings[0].TotalCharge, 1e-9)
	assert.Nil(t, bookings[0].Feedback)
}

func TestAddBookingOverwritesSameName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.add(t, "Alice", "101", "3", "100")
	env.add(t, "Bob", "102", "1", "50")
	env.add(t, "Alice", "205", "2", "75")

	bookings, err := env.bookings.ListBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, customerNames(bookings))
	assert.Equal(t, 205, bookings[0].RoomNumber)
	assert.Equal(t, 2, bookings[0].Nights)
	assert.Equal(t, 150.0, bookings[0].TotalCharge)
}

func TestAddBookingInvalidInputLeavesStoreUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.add(t, "Alice", "101", "3", "100")
	before := env.ledgerBytes(t)

	tests := []struct {
		name string
		req  AddBookingRequest
	}{
		{name: "room", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "one", Nights: "1", RatePerNight: "10"}},
		{name: "nights", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "1", Nights: "", RatePerNight: "10"}},
		{name: "rate", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "1", Nights: "1", RatePerNight: "ten"}},
		{name: "overwrite attempt", req: AddBookingRequest{CustomerName: "Alice", RoomNumber: "1", Nights: "x", RatePerNight: "10"}},
		{name: "nan rate", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "1", Nights: "1", RatePerNight: "nan"}},
		{name: "infinite rate", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "1", Nights: "1", RatePerNight: "inf"}},
		{name: "negative infinite rate", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "1", Nights: "1", RatePerNight: "-Infinity"}},
		{name: "total overflows", req: AddBookingRequest{CustomerName: "Bob", RoomNumber: "1", Nights: "10", RatePerNight: "1e308"}},
		{name: "empty name", req: AddBookingRequest{CustomerName: " ", RoomNumber: "1", Nights: "1", RatePerNight: "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.bookings.AddBooking(ctx, &req)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
			assert.Equal(t, before, env.ledgerBytes(t))
		})
	}
}

func TestListBookingsEmpty(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bookings.ListBookings(context.Background())
	assert.ErrorIs(t, err, entity.ErrEmptyStore)

	// Чтение пустого хранилища не создает файл
	_, statErr := os.Stat(env.ledger)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.add(t, "Alice", "101", "3", "100")
	env.add(t, "Bob", "102", "2", "80")

	require.NoError(t, env.bookings.Checkout(ctx, "Alice"))

	bookings, err := env.bookings.ListBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, customerNames(bookings))

	before := env.ledgerBytes(t)
	err = env.bookings.Checkout(ctx, "Alice")
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	assert.Equal(t, before, env.ledgerBytes(t))
}

func TestCalculateRevenue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	revenue, err := env.bookings.CalculateRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, revenue)

	env.add(t, "A", "1", "2", "100")
	env.add(t, "B", "2", "3", "50")

	revenue, err = env.bookings.CalculateRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 350.0, revenue, 1e-9)
}

func TestSearchBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.add(t, "Smith", "101", "1", "10")
	env.add(t, "Jones", "202", "1", "10")
	env.add(t, "Room1010 Guest", "303", "1", "10")

	tests := []struct {
		term    string
		want    []string
		wantErr error
	}{
		{term: "101", want: []string{"Smith", "Room1010 Guest"}},
		{term: "202", want: []string{"Jones"}},
		{term: "Sm", want: []string{"Smith"}},
		{term: "o", want: []string{"Jones", "Room1010 Guest"}},
		{term: "Nobody", wantErr: entity.ErrEmptyStore},
		{term: "30", wantErr: entity.ErrEmptyStore},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			found, err := env.bookings.SearchBookings(ctx, tt.term)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, customerNames(found))
		})
	}
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("nights only keeps rate", func(t *testing.T) {
		env := newTestEnv(t)
		env.add(t, "Alice", "101", "3", "80")

		updated, err := env.bookings.UpdateBooking(ctx, "Alice", &UpdateBookingRequest{Nights: "5"})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Nights)
		assert.Equal(t, 80.0, updated.RatePerNight)
		assert.Equal(t, 400.0, updated.TotalCharge)

		stored, err := env.bookings.GetBooking(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("rate only keeps nights", func(t *testing.T) {
		env := newTestEnv(t)
		env.add(t, "Alice", "101", "3", "80")

		updated, err := env.bookings.UpdateBooking(ctx, "Alice", &UpdateBookingRequest{Nights: "  ", RatePerNight: "90.5"})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Nights)
		assert.InDelta(t, 271.5, updated.TotalCharge, 1e-9)
	})

	t.Run("feedback survives update", func(t *testing.T) {
		env := newTestEnv(t)
		env.add(t, "Alice", "101", "3", "80")
		_, err := env.feedback.LeaveFeedback(ctx, "Alice", &FeedbackRequest{Selector: "1", Comment: "Great"})
		require.NoError(t, err)

		updated, err := env.bookings.UpdateBooking(ctx, "Alice", &UpdateBookingRequest{Nights: "1"})
		require.NoError(t, err)
		require.NotNil(t, updated.Feedback)
		assert.Equal(t, entity.RatingExcellent, updated.Feedback.Rating)
	})

	t.Run("invalid value leaves booking unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		env.add(t, "Alice", "101", "3", "80")
		before := env.ledgerBytes(t)

		_, err := env.bookings.UpdateBooking(ctx, "Alice", &UpdateBookingRequest{Nights: "5", RatePerNight: "lots"})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
		assert.Equal(t, before, env.ledgerBytes(t))
	})

	t.Run("non finite values are rejected", func(t *testing.T) {
		tests := []struct {
			name string
			req  UpdateBookingRequest
		}{
			{name: "nan rate", req: UpdateBookingRequest{RatePerNight: "NaN"}},
			{name: "infinite rate", req: UpdateBookingRequest{RatePerNight: "+Inf"}},
			{name: "total overflows", req: UpdateBookingRequest{Nights: "10", RatePerNight: "1e308"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				env.add(t, "Alice", "101", "3", "80")
				before := env.ledgerBytes(t)

				req := tt.req
				_, err := env.bookings.UpdateBooking(ctx, "Alice", &req)
				assert.ErrorIs(t, err, entity.ErrInvalidInput)
				assert.Equal(t, before, env.ledgerBytes(t))
			})
		}
	})

	t.Run("absent name", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.bookings.UpdateBooking(ctx, "Ghost", &UpdateBookingRequest{Nights: "5"})
		assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	})
}

func TestGetBookingNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bookings.GetBooking(context.Background(), "Ghost")
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	assert.Contains(t, err.Error(), "Ghost")
}

// Состояние переживает пересоздание сервисов поверх того же файла
func TestStatePersistsAcrossInstances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.add(t, "Alice", "101", "3", "100")

	store := NewStore(database.NewLedgerRepository(storage.NewFileStorage(env.dir), "hotel_data.json"))
	bookings, err := NewBookingService(store).ListBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, customerNames(bookings))
}

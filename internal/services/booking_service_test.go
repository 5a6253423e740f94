package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

func newBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock) {
	db, mock := setupTestDB(t)
	service := NewBookingService(database.NewBookingRepository(db), time.UTC, quietLogger())
	service.now = func() time.Time { return fixedNow }
	return service, mock
}

const roomForShare = "SELECT (.+) FROM rooms WHERE id = \\$1 FOR SHARE"

func TestBookingService_Create(t *testing.T) {
	t.Run("prices nights at the room rate", func(t *testing.T) {
		service, mock := newBookingService(t)
		guestID, roomID, bookingID := uuid.New(), uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WithArgs(roomID).
			WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", 80))
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(sqlmock.AnyArg(), guestID, roomID, "2024-01-01", "2024-01-03",
				"pending", 160.0, "unpaid", sqlmock.AnyArg()).
			WillReturnRows(bookingRow(bookingID, guestID, roomID, day(2024, 1, 1), day(2024, 1, 3), "pending", 160, "unpaid"))
		mock.ExpectCommit()

		booking, err := service.Create(&models.CreateBookingRequest{
			GuestID:      guestID,
			RoomID:       roomID,
			CheckInDate:  "2024-01-01",
			CheckOutDate: "2024-01-03",
		})
		require.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)
		assert.Equal(t, 160.0, booking.TotalAmount)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, models.PaymentStatusUnpaid, booking.PaymentStatus)
		assert.Equal(t, "2024-01-01", booking.CheckInDate.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("times on the same calendar day are rejected", func(t *testing.T) {
		service, mock := newBookingService(t)
		roomID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WithArgs(roomID).
			WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", 80))
		mock.ExpectRollback()

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      uuid.New(),
			RoomID:       roomID,
			CheckInDate:  "2024-01-01T08:00:00Z",
			CheckOutDate: "2024-01-01T20:00:00Z",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("timestamps are priced on their calendar dates", func(t *testing.T) {
		service, mock := newBookingService(t)
		guestID, roomID := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WithArgs(roomID).
			WillReturnRows(roomRow(roomID, "202", 2, "suite", "vacant", 200))
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(sqlmock.AnyArg(), guestID, roomID, "2024-01-01", "2024-01-02",
				"pending", 200.0, "unpaid", sqlmock.AnyArg()).
			WillReturnRows(bookingRow(uuid.New(), guestID, roomID, day(2024, 1, 1), day(2024, 1, 2), "pending", 200, "unpaid"))
		mock.ExpectCommit()

		booking, err := service.Create(&models.CreateBookingRequest{
			GuestID:      guestID,
			RoomID:       roomID,
			CheckInDate:  "2024-01-01T14:00:00Z",
			CheckOutDate: "2024-01-02T18:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, 200.0, booking.TotalAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("offsets resolve to the hotel's calendar", func(t *testing.T) {
		db, mock := setupTestDB(t)
		tokyo := time.FixedZone("UTC+9", 9*60*60)
		service := NewBookingService(database.NewBookingRepository(db), tokyo, quietLogger())
		guestID, roomID := uuid.New(), uuid.New()

		// 20:00 UTC on Jan 1 is already Jan 2 in the hotel
		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WithArgs(roomID).
			WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", 80))
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(sqlmock.AnyArg(), guestID, roomID, "2024-01-02", "2024-01-04",
				"pending", 160.0, "unpaid", sqlmock.AnyArg()).
			WillReturnRows(bookingRow(uuid.New(), guestID, roomID, day(2024, 1, 2), day(2024, 1, 4), "pending", 160, "unpaid"))
		mock.ExpectCommit()

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      guestID,
			RoomID:       roomID,
			CheckInDate:  "2024-01-01T20:00:00Z",
			CheckOutDate: "2024-01-04",
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check-out before check-in persists nothing", func(t *testing.T) {
		service, mock := newBookingService(t)
		roomID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WithArgs(roomID).
			WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", 80))
		mock.ExpectRollback()

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      uuid.New(),
			RoomID:       roomID,
			CheckInDate:  "2024-01-03",
			CheckOutDate: "2024-01-01",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same day is rejected", func(t *testing.T) {
		service, mock := newBookingService(t)
		roomID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", 80))
		mock.ExpectRollback()

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      uuid.New(),
			RoomID:       roomID,
			CheckInDate:  "2024-01-01",
			CheckOutDate: "2024-01-01",
		})
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown room", func(t *testing.T) {
		service, mock := newBookingService(t)
		roomID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows(roomCols))
		mock.ExpectRollback()

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      uuid.New(),
			RoomID:       roomID,
			CheckInDate:  "2024-01-01",
			CheckOutDate: "2024-01-03",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "Room with ID")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown guest", func(t *testing.T) {
		service, mock := newBookingService(t)
		guestID, roomID := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(roomForShare).
			WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", 80))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})
		mock.ExpectRollback()

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      guestID,
			RoomID:       roomID,
			CheckInDate:  "2024-01-01",
			CheckOutDate: "2024-01-03",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "Guest with ID "+guestID.String()+" not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed date", func(t *testing.T) {
		service, mock := newBookingService(t)

		_, err := service.Create(&models.CreateBookingRequest{
			GuestID:      uuid.New(),
			RoomID:       uuid.New(),
			CheckInDate:  "01/01/2024",
			CheckOutDate: "2024-01-03",
		})
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("status change leaves the total alone", func(t *testing.T) {
		service, mock := newBookingService(t)
		id, guestID, roomID := uuid.New(), uuid.New(), uuid.New()
		status := models.BookingStatusConfirmed
		paid := models.PaymentStatusPaid

		mock.ExpectExec("UPDATE bookings SET status = \\$1, payment_status = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3").
			WithArgs("confirmed", "paid", id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(bookingRow(id, guestID, roomID, day(2024, 1, 1), day(2024, 1, 3), "confirmed", 160, "paid"))

		booking, err := service.Update(id, &models.UpdateBookingRequest{Status: &status, PaymentStatus: &paid})
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, 160.0, booking.TotalAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("both dates out of order", func(t *testing.T) {
		service, mock := newBookingService(t)
		in, out := "2024-01-05", "2024-01-02"

		_, err := service.Update(uuid.New(), &models.UpdateBookingRequest{CheckInDate: &in, CheckOutDate: &out})
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("both dates on the same calendar day", func(t *testing.T) {
		service, mock := newBookingService(t)
		in, out := "2024-01-05T09:00:00Z", "2024-01-05T21:00:00Z"

		_, err := service.Update(uuid.New(), &models.UpdateBookingRequest{CheckInDate: &in, CheckOutDate: &out})
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single date is not checked against the stored one", func(t *testing.T) {
		service, mock := newBookingService(t)
		id, guestID, roomID := uuid.New(), uuid.New(), uuid.New()
		in := "2024-01-10"

		mock.ExpectExec("UPDATE bookings SET check_in_date = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2").
			WithArgs("2024-01-10", id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(bookingRow(id, guestID, roomID, day(2024, 1, 10), day(2024, 1, 3), "pending", 160, "unpaid"))

		booking, err := service.Update(id, &models.UpdateBookingRequest{CheckInDate: &in})
		require.NoError(t, err)
		assert.Equal(t, 160.0, booking.TotalAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown booking", func(t *testing.T) {
		service, mock := newBookingService(t)
		id := uuid.New()
		notes := "late arrival"

		mock.ExpectExec("UPDATE bookings").
			WithArgs(notes, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := service.Update(id, &models.UpdateBookingRequest{SpecialRequests: &notes})
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingService_TodayCheckIns(t *testing.T) {
	service, mock := newBookingService(t)
	guestID, roomID := uuid.New(), uuid.New()

	cols := append(append([]string{}, bookingCols...), "first_name", "last_name", "email", "phone", "room_number", "room_type")
	mock.ExpectQuery("WHERE b.check_in_date = \\$1 AND b.status IN \\('pending', 'confirmed'\\)").
		WithArgs("2024-01-01").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(uuid.New().String(), guestID.String(), roomID.String(), day(2024, 1, 1), day(2024, 1, 3),
				"confirmed", 160.0, "unpaid", nil, fixedNow, fixedNow,
				"John", "Smith", "john.smith@email.com", "+1-555-0101", "101", "single"))

	arrivals, err := service.GetTodayCheckIns()
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, "Smith", arrivals[0].LastName)
	assert.Equal(t, models.RoomTypeSingle, arrivals[0].RoomType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_TodayCheckOuts(t *testing.T) {
	service, mock := newBookingService(t)

	mock.ExpectQuery("WHERE b.check_out_date = \\$1 AND b.status = 'checked-in'").
		WithArgs("2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	departures, err := service.GetTodayCheckOuts()
	require.NoError(t, err)
	assert.NotNil(t, departures)
	assert.Empty(t, departures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_Today(t *testing.T) {
	db, _ := setupTestDB(t)
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	service := NewBookingService(database.NewBookingRepository(db), tokyo, quietLogger())
	service.now = func() time.Time { return time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC) }

	assert.Equal(t, "2024-01-02", service.Today().String())
}

func TestBookingService_GetByStatus_Invalid(t *testing.T) {
	service, mock := newBookingService(t)

	_, err := service.GetByStatus("no-show")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_GetWithDetails_NotFound(t *testing.T) {
	service, mock := newBookingService(t)
	id := uuid.New()

	mock.ExpectQuery("FROM bookings b\\s+JOIN guests g").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.GetWithDetails(id)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingService_GetStatistics(t *testing.T) {
	service, mock := newBookingService(t)

	mock.ExpectQuery("FILTER \\(WHERE payment_status = 'paid'\\)").
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "confirmed", "checked_in", "checked_out", "cancelled", "total_revenue"}).
			AddRow(6, 0, 4, 2, 0, 0, 1530.0))

	stats, err := service.GetStatistics()
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.CheckedIn)
	assert.Equal(t, 1530.0, stats.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingTotal_FixedAfterRoomRepricing(t *testing.T) {
	db, mock := setupTestDB(t)
	rooms := NewRoomService(database.NewRoomRepository(db), quietLogger())
	bookings := NewBookingService(database.NewBookingRepository(db), time.UTC, quietLogger())
	bookingID, guestID, roomID := uuid.New(), uuid.New(), uuid.New()
	newPrice := 120.0

	// only the rooms row is written; bookings are never touched
	mock.ExpectExec("UPDATE rooms SET price_per_night = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2").
		WithArgs(newPrice, roomID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM rooms WHERE id").
		WithArgs(roomID).
		WillReturnRows(roomRow(roomID, "101", 1, "single", "vacant", newPrice))
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(bookingID).
		WillReturnRows(bookingRow(bookingID, guestID, roomID, day(2024, 1, 1), day(2024, 1, 3), "confirmed", 160, "unpaid"))

	room, err := rooms.Update(roomID, &models.UpdateRoomRequest{PricePerNight: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, newPrice, room.PricePerNight)

	booking, err := bookings.GetByID(bookingID)
	require.NoError(t, err)
	assert.Equal(t, 160.0, booking.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

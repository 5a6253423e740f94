package services

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	roomCols    = []string{"id", "room_number", "floor", "type", "status", "price_per_night", "capacity", "amenities", "created_at", "updated_at"}
	guestCols   = []string{"id", "first_name", "last_name", "email", "phone", "address", "id_number", "nationality", "created_at", "updated_at"}
	bookingCols = []string{"id", "guest_id", "room_id", "check_in_date", "check_out_date", "status", "total_amount", "payment_status", "special_requests", "created_at", "updated_at"}

	fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
)

// setupTestDB creates a mock database for testing
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func roomRow(id uuid.UUID, number string, floor int, roomType, status string, price float64) *sqlmock.Rows {
	return sqlmock.NewRows(roomCols).
		AddRow(id.String(), number, floor, roomType, status, price, 1, `["WiFi","TV"]`, fixedNow, fixedNow)
}

func guestRow(id uuid.UUID, first, last, email, idNumber string) *sqlmock.Rows {
	return sqlmock.NewRows(guestCols).
		AddRow(id.String(), first, last, email, "+1-555-0101", nil, idNumber, nil, fixedNow, fixedNow)
}

func bookingRow(id, guestID, roomID uuid.UUID, checkIn, checkOut time.Time, status string, total float64, payment string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).
		AddRow(id.String(), guestID.String(), roomID.String(), checkIn, checkOut, status, total, payment, nil, fixedNow, fixedNow)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

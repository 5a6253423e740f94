package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

var roomCols = []string{"id", "room_number", "floor", "type", "status", "price_per_night", "capacity", "amenities", "created_at", "updated_at"}

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestTranslateError(t *testing.T) {
	dup := translateError(&pq.Error{Code: "23505"})
	assert.True(t, errors.Is(dup, ErrDuplicate))

	missing := translateError(&pq.Error{Code: "23503"})
	assert.True(t, errors.Is(missing, ErrReferenceMissing))

	var pqErr *pq.Error
	assert.True(t, errors.As(missing, &pqErr), "driver error stays reachable")

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
	assert.False(t, errors.Is(translateError(&pq.Error{Code: "23502"}), ErrDuplicate))
}

func TestNotFoundError(t *testing.T) {
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	err := notFound("Room", id)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Room with ID 7c9e6679-7425-40de-944b-e07fc1f90ae7 not found", err.Error())
}

func TestUpdateBuilder(t *testing.T) {
	var b updateBuilder
	assert.True(t, b.empty())

	b.set("status", "cleaning")
	b.set("capacity", 2)
	query, args := b.build("rooms", "id-1")

	assert.Equal(t, "UPDATE rooms SET status = $1, capacity = $2, updated_at = NOW() WHERE id = $3", query)
	assert.Equal(t, []interface{}{"cleaning", 2, "id-1"}, args)
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "b.id, b.guest_id, b.room_id", prefixed("b", "id, guest_id,room_id"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "smith", escapeLike("smith"))
}

func TestMigrate(t *testing.T) {
	t.Run("applies every statement", func(t *testing.T) {
		db, mock := setupTestDB(t)
		for range schemaStatements {
			mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, Migrate(db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		db, mock := setupTestDB(t)
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS rooms").WillReturnError(errors.New("permission denied"))

		err := Migrate(db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "statement 1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTruncate(t *testing.T) {
	db, mock := setupTestDB(t)
	mock.ExpectExec("TRUNCATE TABLE bookings, guests, rooms CASCADE").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Truncate(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	checkIn, _ := models.ParseDate("2024-01-01")
	checkOut, _ := models.ParseDate("2024-01-03")

	t.Run("unknown room rolls back", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewBookingRepository(db)
		roomID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery("FROM rooms WHERE id = \\$1 FOR SHARE").
			WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows(roomCols))
		mock.ExpectRollback()

		_, err := repo.Create(&models.Booking{RoomID: roomID, GuestID: uuid.New(), CheckInDate: checkIn, CheckOutDate: checkOut},
			func(*models.Room) (float64, error) { return 0, nil })
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "Room", nf.Entity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("price rejection rolls back", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewBookingRepository(db)
		roomID := uuid.New()
		rejected := errors.New("bad stay")

		mock.ExpectBegin()
		mock.ExpectQuery("FROM rooms WHERE id = \\$1 FOR SHARE").
			WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows(roomCols).
				AddRow(roomID.String(), "101", 1, "single", "vacant", 80.0, 1, nil, now, now))
		mock.ExpectRollback()

		_, err := repo.Create(&models.Booking{RoomID: roomID, GuestID: uuid.New(), CheckInDate: checkOut, CheckOutDate: checkIn},
			func(*models.Room) (float64, error) { return 0, rejected })
		assert.Equal(t, rejected, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown guest is a missing reference", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewBookingRepository(db)
		roomID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery("FROM rooms WHERE id = \\$1 FOR SHARE").
			WithArgs(roomID).
			WillReturnRows(sqlmock.NewRows(roomCols).
				AddRow(roomID.String(), "101", 1, "single", "vacant", 80.0, 1, nil, now, now))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})
		mock.ExpectRollback()

		_, err := repo.Create(&models.Booking{RoomID: roomID, GuestID: uuid.New(), CheckInDate: checkIn, CheckOutDate: checkOut},
			func(room *models.Room) (float64, error) { return 2 * room.PricePerNight, nil })
		assert.True(t, errors.Is(err, ErrReferenceMissing))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGuestRepository_Update_NoFields(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewGuestRepository(db)
	id := uuid.New()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM guests WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "address", "id_number", "nationality", "created_at", "updated_at"}).
			AddRow(id.String(), "John", "Smith", "john.smith@email.com", "+1-555-0101", nil, "ID001", nil, now, now))

	guest, err := repo.Update(id, &models.UpdateGuestRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Smith", guest.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

const bookingColumns = `id, guest_id, room_id, check_in_date, check_out_date, status, total_amount, payment_status, special_requests, created_at, updated_at`

// PriceFunc prices a stay in the given room. Returning an error aborts the booking.
type PriceFunc func(room *models.Room) (float64, error)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking priced against the current room row.
// The room is read with FOR SHARE in the same transaction as the insert, so its
// price cannot change and the room cannot be deleted between pricing and insert.
func (r *BookingRepository) Create(booking *models.Booking, price PriceFunc) (*models.Booking, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var room models.Room
	err = tx.Get(&room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR SHARE`, booking.RoomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Room", booking.RoomID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	total, err := price(&room)
	if err != nil {
		return nil, err
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.TotalAmount = total
	booking.Status = models.BookingStatusPending
	booking.PaymentStatus = models.PaymentStatusUnpaid

	query := `
		INSERT INTO bookings (
			id, guest_id, room_id, check_in_date, check_out_date,
			status, total_amount, payment_status, special_requests,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + bookingColumns

	var created models.Booking
	err = tx.QueryRowx(
		query,
		booking.ID,
		booking.GuestID,
		booking.RoomID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Status,
		booking.TotalAmount,
		booking.PaymentStatus,
		booking.SpecialRequests,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", translateError(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a booking without joined rows
func (r *BookingRepository) GetByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.Get(&booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Booking", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// bookingDetailsRow is the flat result of joining a booking with its guest and room
type bookingDetailsRow struct {
	models.Booking

	GuestFirstName   string       `db:"guest_first_name"`
	GuestLastName    string       `db:"guest_last_name"`
	GuestEmail       string       `db:"guest_email"`
	GuestPhone       string       `db:"guest_phone"`
	GuestAddress     *string      `db:"guest_address"`
	GuestIDNumber    string       `db:"guest_id_number"`
	GuestNationality *string      `db:"guest_nationality"`
	GuestCreatedAt   sql.NullTime `db:"guest_created_at"`
	GuestUpdatedAt   sql.NullTime `db:"guest_updated_at"`

	RoomNumber        string            `db:"room_number"`
	RoomFloor         int               `db:"room_floor"`
	RoomType          models.RoomType   `db:"room_type"`
	RoomStatus        models.RoomStatus `db:"room_status"`
	RoomPricePerNight float64           `db:"room_price_per_night"`
	RoomCapacity      int               `db:"room_capacity"`
	RoomAmenities     models.Amenities  `db:"room_amenities"`
	RoomCreatedAt     sql.NullTime      `db:"room_created_at"`
	RoomUpdatedAt     sql.NullTime      `db:"room_updated_at"`
}

// toBookingWithDetails reshapes a joined row into the nested booking view
func toBookingWithDetails(row *bookingDetailsRow) *models.BookingWithDetails {
	return &models.BookingWithDetails{
		Booking: row.Booking,
		Guest: models.Guest{
			ID:          row.GuestID,
			FirstName:   row.GuestFirstName,
			LastName:    row.GuestLastName,
			Email:       row.GuestEmail,
			Phone:       row.GuestPhone,
			Address:     row.GuestAddress,
			IDNumber:    row.GuestIDNumber,
			Nationality: row.GuestNationality,
			CreatedAt:   row.GuestCreatedAt.Time,
			UpdatedAt:   row.GuestUpdatedAt.Time,
		},
		Room: models.Room{
			ID:            row.RoomID,
			RoomNumber:    row.RoomNumber,
			Floor:         row.RoomFloor,
			Type:          row.RoomType,
			Status:        row.RoomStatus,
			PricePerNight: row.RoomPricePerNight,
			Capacity:      row.RoomCapacity,
			Amenities:     row.RoomAmenities,
			CreatedAt:     row.RoomCreatedAt.Time,
			UpdatedAt:     row.RoomUpdatedAt.Time,
		},
	}
}

// GetByIDWithDetails retrieves a booking joined with its guest and room.
// A booking whose guest or room row is missing is reported as not found.
func (r *BookingRepository) GetByIDWithDetails(id uuid.UUID) (*models.BookingWithDetails, error) {
	query := `
		SELECT ` + prefixed("b", bookingColumns) + `,
			g.first_name AS guest_first_name, g.last_name AS guest_last_name,
			g.email AS guest_email, g.phone AS guest_phone, g.address AS guest_address,
			g.id_number AS guest_id_number, g.nationality AS guest_nationality,
			g.created_at AS guest_created_at, g.updated_at AS guest_updated_at,
			r.room_number, r.floor AS room_floor, r.type AS room_type, r.status AS room_status,
			r.price_per_night AS room_price_per_night, r.capacity AS room_capacity,
			r.amenities AS room_amenities,
			r.created_at AS room_created_at, r.updated_at AS room_updated_at
		FROM bookings b
		JOIN guests g ON b.guest_id = g.id
		JOIN rooms r ON b.room_id = r.id
		WHERE b.id = $1
	`

	var row bookingDetailsRow
	err := r.db.Get(&row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Booking", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking details: %w", err)
	}

	return toBookingWithDetails(&row), nil
}

// GetAll retrieves every booking, latest check-in first
func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	return r.selectBookings(`SELECT `+bookingColumns+` FROM bookings ORDER BY check_in_date DESC`)
}

// GetByStatus retrieves bookings in the given status
func (r *BookingRepository) GetByStatus(status models.BookingStatus) ([]models.Booking, error) {
	return r.selectBookings(`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY check_in_date DESC`, status)
}

// GetByGuestID retrieves the bookings held by a guest
func (r *BookingRepository) GetByGuestID(guestID uuid.UUID) ([]models.Booking, error) {
	return r.selectBookings(`SELECT `+bookingColumns+` FROM bookings WHERE guest_id = $1 ORDER BY check_in_date DESC`, guestID)
}

// GetByRoomID retrieves the bookings of a room
func (r *BookingRepository) GetByRoomID(roomID uuid.UUID) ([]models.Booking, error) {
	return r.selectBookings(`SELECT `+bookingColumns+` FROM bookings WHERE room_id = $1 ORDER BY check_in_date DESC`, roomID)
}

func (r *BookingRepository) selectBookings(query string, args ...interface{}) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

var bookingSummarySelect = `
	SELECT ` + prefixed("b", bookingColumns) + `,
		g.first_name, g.last_name, g.email, g.phone,
		r.room_number, r.type AS room_type
	FROM bookings b
	JOIN guests g ON b.guest_id = g.id
	JOIN rooms r ON b.room_id = r.id
`

// GetCheckInsOn returns pending or confirmed bookings whose stay starts on day
func (r *BookingRepository) GetCheckInsOn(day models.Date) ([]models.BookingSummary, error) {
	query := bookingSummarySelect + `
		WHERE b.check_in_date = $1 AND b.status IN ('pending', 'confirmed')
		ORDER BY b.check_in_date
	`
	summaries := []models.BookingSummary{}
	if err := r.db.Select(&summaries, query, day); err != nil {
		return nil, fmt.Errorf("failed to get check-ins: %w", err)
	}
	return summaries, nil
}

// GetCheckOutsOn returns checked-in bookings whose stay ends on day
func (r *BookingRepository) GetCheckOutsOn(day models.Date) ([]models.BookingSummary, error) {
	query := bookingSummarySelect + `
		WHERE b.check_out_date = $1 AND b.status = 'checked-in'
		ORDER BY b.check_out_date
	`
	summaries := []models.BookingSummary{}
	if err := r.db.Select(&summaries, query, day); err != nil {
		return nil, fmt.Errorf("failed to get check-outs: %w", err)
	}
	return summaries, nil
}

// Update applies the supplied fields and returns the stored row.
// total_amount is never touched.
func (r *BookingRepository) Update(id uuid.UUID, changes *models.BookingChanges) (*models.Booking, error) {
	var b updateBuilder
	if changes.CheckInDate != nil {
		b.set("check_in_date", *changes.CheckInDate)
	}
	if changes.CheckOutDate != nil {
		b.set("check_out_date", *changes.CheckOutDate)
	}
	if changes.Status != nil {
		b.set("status", *changes.Status)
	}
	if changes.PaymentStatus != nil {
		b.set("payment_status", *changes.PaymentStatus)
	}
	if changes.SpecialRequests != nil {
		b.set("special_requests", *changes.SpecialRequests)
	}

	if b.empty() {
		return r.GetByID(id)
	}

	query, args := b.build("bookings", id)
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if err := requireAffected(result, "Booking", id); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes a booking. The room's status is left as it is.
func (r *BookingRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return requireAffected(result, "Booking", id)
}

// GetStatistics counts bookings per status and sums revenue of fully paid bookings
func (r *BookingRepository) GetStatistics() (*models.BookingStatistics, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'checked-in') AS checked_in,
			COUNT(*) FILTER (WHERE status = 'checked-out') AS checked_out,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue
		FROM bookings
	`

	var stats models.BookingStatistics
	if err := r.db.Get(&stats, query); err != nil {
		return nil, fmt.Errorf("failed to get booking statistics: %w", err)
	}
	return &stats, nil
}

package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

const guestColumns = `id, first_name, last_name, email, phone, address, id_number, nationality, created_at, updated_at`

// GuestRepository handles database operations for guests
type GuestRepository struct {
	db *sqlx.DB
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *sqlx.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create inserts a new guest and returns the stored row
func (r *GuestRepository) Create(guest *models.Guest) (*models.Guest, error) {
	if guest.ID == uuid.Nil {
		guest.ID = uuid.New()
	}

	query := `
		INSERT INTO guests (id, first_name, last_name, email, phone, address, id_number, nationality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + guestColumns

	var created models.Guest
	err := r.db.QueryRowx(
		query,
		guest.ID,
		guest.FirstName,
		guest.LastName,
		guest.Email,
		guest.Phone,
		guest.Address,
		guest.IDNumber,
		guest.Nationality,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", translateError(err))
	}

	return &created, nil
}

// GetByID retrieves a guest by ID
func (r *GuestRepository) GetByID(id uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	err := r.db.Get(&guest, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Guest", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return &guest, nil
}

// GetAll retrieves every guest ordered by last name then first name
func (r *GuestRepository) GetAll() ([]models.Guest, error) {
	guests := []models.Guest{}
	query := `SELECT ` + guestColumns + ` FROM guests ORDER BY last_name, first_name`
	if err := r.db.Select(&guests, query); err != nil {
		return nil, fmt.Errorf("failed to get guests: %w", err)
	}
	return guests, nil
}

// FindByEmail returns the guest with the given email, or nil if there is none
func (r *GuestRepository) FindByEmail(email string) (*models.Guest, error) {
	return r.findOne(`SELECT `+guestColumns+` FROM guests WHERE email = $1`, email)
}

// FindByIDNumber returns the guest with the given identification number, or nil if there is none
func (r *GuestRepository) FindByIDNumber(idNumber string) (*models.Guest, error) {
	return r.findOne(`SELECT `+guestColumns+` FROM guests WHERE id_number = $1`, idNumber)
}

func (r *GuestRepository) findOne(query string, arg interface{}) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.Get(&guest, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find guest: %w", err)
	}
	return &guest, nil
}

// SearchByName matches term case-insensitively against first or last name
func (r *GuestRepository) SearchByName(term string) ([]models.Guest, error) {
	guests := []models.Guest{}
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY last_name, first_name
	`
	if err := r.db.Select(&guests, query, "%"+escapeLike(term)+"%"); err != nil {
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}
	return guests, nil
}

// Update applies the supplied fields and returns the stored row
func (r *GuestRepository) Update(id uuid.UUID, req *models.UpdateGuestRequest) (*models.Guest, error) {
	var b updateBuilder
	if req.FirstName != nil {
		b.set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		b.set("last_name", *req.LastName)
	}
	if req.Email != nil {
		b.set("email", *req.Email)
	}
	if req.Phone != nil {
		b.set("phone", *req.Phone)
	}
	if req.Address != nil {
		b.set("address", *req.Address)
	}
	if req.Nationality != nil {
		b.set("nationality", *req.Nationality)
	}

	if b.empty() {
		return r.GetByID(id)
	}

	query, args := b.build("guests", id)
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", translateError(err))
	}
	if err := requireAffected(result, "Guest", id); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes a guest; their bookings are removed by the ON DELETE CASCADE constraint
func (r *GuestRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	return requireAffected(result, "Guest", id)
}

// GetStatistics counts all guests and the guests holding at least one booking
func (r *GuestRepository) GetStatistics() (*models.GuestStatistics, error) {
	var stats models.GuestStatistics

	if err := r.db.Get(&stats.Total, `SELECT COUNT(*) FROM guests`); err != nil {
		return nil, fmt.Errorf("failed to count guests: %w", err)
	}
	if err := r.db.Get(&stats.WithBookings, `SELECT COUNT(DISTINCT guest_id) FROM bookings`); err != nil {
		return nil, fmt.Errorf("failed to count guests with bookings: %w", err)
	}

	return &stats, nil
}

// GetBookingHistory returns the guest's bookings with room number and type, newest stay first
func (r *GuestRepository) GetBookingHistory(guestID uuid.UUID) ([]models.GuestBooking, error) {
	history := []models.GuestBooking{}
	query := `
		SELECT ` + prefixed("b", bookingColumns) + `,
			r.room_number, r.type AS room_type
		FROM bookings b
		JOIN rooms r ON b.room_id = r.id
		WHERE b.guest_id = $1
		ORDER BY b.check_in_date DESC
	`
	if err := r.db.Select(&history, query, guestID); err != nil {
		return nil, fmt.Errorf("failed to get guest bookings: %w", err)
	}
	return history, nil
}

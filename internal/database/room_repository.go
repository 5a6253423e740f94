package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

const roomColumns = `id, room_number, floor, type, status, price_per_night, capacity, amenities, created_at, updated_at`

// RoomRepository handles database operations for rooms
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a new room and returns the stored row
func (r *RoomRepository) Create(room *models.Room) (*models.Room, error) {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	if room.Status == "" {
		room.Status = models.RoomStatusVacant
	}

	query := `
		INSERT INTO rooms (id, room_number, floor, type, status, price_per_night, capacity, amenities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + roomColumns

	var created models.Room
	err := r.db.QueryRowx(
		query,
		room.ID,
		room.RoomNumber,
		room.Floor,
		room.Type,
		room.Status,
		room.PricePerNight,
		room.Capacity,
		room.Amenities,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", translateError(err))
	}

	return &created, nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	err := r.db.Get(&room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Room", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// GetAll retrieves every room ordered by floor then room number
func (r *RoomRepository) GetAll() ([]models.Room, error) {
	rooms := []models.Room{}
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY floor, room_number`
	if err := r.db.Select(&rooms, query); err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, nil
}

// GetByStatus retrieves rooms in the given status
func (r *RoomRepository) GetByStatus(status models.RoomStatus) ([]models.Room, error) {
	rooms := []models.Room{}
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE status = $1 ORDER BY floor, room_number`
	if err := r.db.Select(&rooms, query, status); err != nil {
		return nil, fmt.Errorf("failed to get rooms by status: %w", err)
	}
	return rooms, nil
}

// GetByFloor retrieves rooms on the given floor
func (r *RoomRepository) GetByFloor(floor int) ([]models.Room, error) {
	rooms := []models.Room{}
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE floor = $1 ORDER BY room_number`
	if err := r.db.Select(&rooms, query, floor); err != nil {
		return nil, fmt.Errorf("failed to get rooms by floor: %w", err)
	}
	return rooms, nil
}

// Update applies the supplied fields and returns the stored row
func (r *RoomRepository) Update(id uuid.UUID, req *models.UpdateRoomRequest) (*models.Room, error) {
	var b updateBuilder
	if req.RoomNumber != nil {
		b.set("room_number", *req.RoomNumber)
	}
	if req.Floor != nil {
		b.set("floor", *req.Floor)
	}
	if req.Type != nil {
		b.set("type", *req.Type)
	}
	if req.Status != nil {
		b.set("status", *req.Status)
	}
	if req.PricePerNight != nil {
		b.set("price_per_night", *req.PricePerNight)
	}
	if req.Capacity != nil {
		b.set("capacity", *req.Capacity)
	}
	if req.Amenities != nil {
		b.set("amenities", models.Amenities(*req.Amenities))
	}

	if b.empty() {
		return r.GetByID(id)
	}

	query, args := b.build("rooms", id)
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", translateError(err))
	}
	if err := requireAffected(result, "Room", id); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes a room; its bookings are removed by the ON DELETE CASCADE constraint
func (r *RoomRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return requireAffected(result, "Room", id)
}

// GetStatistics counts rooms per status
func (r *RoomRepository) GetStatistics() (*models.RoomStatistics, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'vacant') AS vacant,
			COUNT(*) FILTER (WHERE status = 'occupied') AS occupied,
			COUNT(*) FILTER (WHERE status = 'cleaning') AS cleaning,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance
		FROM rooms
	`

	var stats models.RoomStatistics
	if err := r.db.Get(&stats, query); err != nil {
		return nil, fmt.Errorf("failed to get room statistics: %w", err)
	}
	return &stats, nil
}

func requireAffected(result sql.Result, entity string, id uuid.UUID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound(entity, id)
	}
	return nil
}

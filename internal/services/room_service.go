package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

// RoomService handles business logic for rooms
type RoomService struct {
	roomRepo *database.RoomRepository
	logger   logrus.FieldLogger
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo *database.RoomRepository, logger logrus.FieldLogger) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Create registers a new vacant room
func (s *RoomService) Create(req *models.CreateRoomRequest) (*models.Room, error) {
	if req.RoomNumber == "" {
		return nil, invalidInput("Room number is required")
	}
	if req.Floor == nil {
		return nil, invalidInput("Floor is required")
	}
	if !req.Type.IsValid() {
		return nil, invalidInput("Invalid room type: %s", req.Type)
	}
	if req.PricePerNight <= 0 {
		return nil, invalidInput("Price per night must be greater than zero")
	}
	if req.Capacity <= 0 {
		return nil, invalidInput("Capacity must be greater than zero")
	}

	room := &models.Room{
		RoomNumber:    req.RoomNumber,
		Floor:         *req.Floor,
		Type:          req.Type,
		Status:        models.RoomStatusVacant,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Amenities:     models.Amenities(req.Amenities),
	}

	created, err := s.roomRepo.Create(room)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, conflict("Room with this room number already exists")
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"room_id":     created.ID,
		"room_number": created.RoomNumber,
	}).Info("Room created")

	return created, nil
}

// GetAll lists every room
func (s *RoomService) GetAll() ([]models.Room, error) {
	return s.roomRepo.GetAll()
}

// GetByID returns a room or a not-found error
func (s *RoomService) GetByID(id uuid.UUID) (*models.Room, error) {
	return s.roomRepo.GetByID(id)
}

// GetByStatus lists rooms in the given status
func (s *RoomService) GetByStatus(status models.RoomStatus) ([]models.Room, error) {
	if !status.IsValid() {
		return nil, invalidInput("Invalid room status: %s", status)
	}
	return s.roomRepo.GetByStatus(status)
}

// GetAvailable lists vacant rooms. Bookings are not consulted.
func (s *RoomService) GetAvailable() ([]models.Room, error) {
	return s.roomRepo.GetByStatus(models.RoomStatusVacant)
}

// GetByFloor lists rooms on a floor
func (s *RoomService) GetByFloor(floor int) ([]models.Room, error) {
	return s.roomRepo.GetByFloor(floor)
}

// Update changes the supplied room fields
func (s *RoomService) Update(id uuid.UUID, req *models.UpdateRoomRequest) (*models.Room, error) {
	if req.RoomNumber != nil && *req.RoomNumber == "" {
		return nil, invalidInput("Room number cannot be empty")
	}
	if req.Type != nil && !req.Type.IsValid() {
		return nil, invalidInput("Invalid room type: %s", *req.Type)
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, invalidInput("Invalid room status: %s", *req.Status)
	}
	if req.PricePerNight != nil && *req.PricePerNight <= 0 {
		return nil, invalidInput("Price per night must be greater than zero")
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, invalidInput("Capacity must be greater than zero")
	}

	room, err := s.roomRepo.Update(id, req)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, conflict("Room with this room number already exists")
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room together with its bookings
func (s *RoomService) Delete(id uuid.UUID) error {
	if err := s.roomRepo.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("room_id", id).Info("Room deleted")
	return nil
}

// GetStatistics returns room counts per status
func (s *RoomService) GetStatistics() (*models.RoomStatistics, error) {
	stats, err := s.roomRepo.GetStatistics()
	if err != nil {
		return nil, fmt.Errorf("room statistics: %w", err)
	}
	return stats, nil
}

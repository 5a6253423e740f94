package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

const (
	msgDuplicateEmail    = "Guest with this email already exists"
	msgDuplicateIDNumber = "Guest with this ID number already exists"
)

// GuestService handles business logic for guests
type GuestService struct {
	guestRepo *database.GuestRepository
	logger    logrus.FieldLogger
}

// NewGuestService creates a new GuestService
func NewGuestService(guestRepo *database.GuestRepository, logger logrus.FieldLogger) *GuestService {
	return &GuestService{
		guestRepo: guestRepo,
		logger:    logger,
	}
}

// Create registers a guest. Email and ID number must not be taken.
func (s *GuestService) Create(req *models.CreateGuestRequest) (*models.Guest, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Phone == "" || req.IDNumber == "" {
		return nil, invalidInput("First name, last name, email, phone and ID number are required")
	}

	existing, err := s.guestRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict(msgDuplicateEmail)
	}

	existing, err = s.guestRepo.FindByIDNumber(req.IDNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict(msgDuplicateIDNumber)
	}

	guest := &models.Guest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		IDNumber:    req.IDNumber,
		Nationality: req.Nationality,
	}

	created, err := s.guestRepo.Create(guest)
	if errors.Is(err, database.ErrDuplicate) {
		// lost a race with a concurrent insert
		return nil, conflict("Guest with this email or ID number already exists")
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithField("guest_id", created.ID).Info("Guest registered")
	return created, nil
}

// GetAll lists every guest
func (s *GuestService) GetAll() ([]models.Guest, error) {
	return s.guestRepo.GetAll()
}

// GetByID returns a guest or a not-found error
func (s *GuestService) GetByID(id uuid.UUID) (*models.Guest, error) {
	return s.guestRepo.GetByID(id)
}

// GetWithBookings returns a guest and their booking history
func (s *GuestService) GetWithBookings(id uuid.UUID) (*models.GuestBookingHistory, error) {
	guest, err := s.guestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	bookings, err := s.guestRepo.GetBookingHistory(id)
	if err != nil {
		return nil, err
	}
	return &models.GuestBookingHistory{Guest: *guest, Bookings: bookings}, nil
}

// SearchByName finds guests whose first or last name contains query
func (s *GuestService) SearchByName(query string) ([]models.Guest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidInput("Search query is required")
	}
	return s.guestRepo.SearchByName(query)
}

// Update changes the supplied guest fields. A new email must not belong to another guest.
func (s *GuestService) Update(id uuid.UUID, req *models.UpdateGuestRequest) (*models.Guest, error) {
	if req.Email != nil {
		if *req.Email == "" {
			return nil, invalidInput("Email cannot be empty")
		}
		existing, err := s.guestRepo.FindByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			// a missing target is reported as such, not as a clash
			if _, err := s.guestRepo.GetByID(id); err != nil {
				return nil, err
			}
			return nil, conflict(msgDuplicateEmail)
		}
	}

	guest, err := s.guestRepo.Update(id, req)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, conflict(msgDuplicateEmail)
	}
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// Delete removes a guest together with their bookings
func (s *GuestService) Delete(id uuid.UUID) error {
	if err := s.guestRepo.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("guest_id", id).Info("Guest deleted")
	return nil
}

// GetStatistics returns guest counts
func (s *GuestService) GetStatistics() (*models.GuestStatistics, error) {
	return s.guestRepo.GetStatistics()
}

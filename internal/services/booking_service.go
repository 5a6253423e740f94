package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

// BookingService handles booking validation, pricing and lookups
type BookingService struct {
	bookingRepo *database.BookingRepository
	logger      logrus.FieldLogger
	location    *time.Location
	now         func() time.Time
}

// NewBookingService creates a new BookingService.
// location decides which calendar day "today" is; nil means UTC.
func NewBookingService(bookingRepo *database.BookingRepository, location *time.Location, logger logrus.FieldLogger) *BookingService {
	if location == nil {
		location = time.UTC
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		logger:      logger,
		location:    location,
		now:         time.Now,
	}
}

// Today returns the current calendar date in the hotel's time zone
func (s *BookingService) Today() models.Date {
	return models.NewDate(s.now().In(s.location))
}

// ParseStayDate reads a check-in/check-out value as a calendar date in the hotel's time zone
func (s *BookingService) ParseStayDate(value string) (models.Date, error) {
	return models.ParseStayDate(value, s.location)
}

// Create books a room for a guest. The total is nights × the room's current
// nightly rate and is fixed from then on.
func (s *BookingService) Create(req *models.CreateBookingRequest) (*models.Booking, error) {
	checkIn, err := s.ParseStayDate(req.CheckInDate)
	if err != nil {
		return nil, invalidInput("Invalid check-in date: %s", req.CheckInDate)
	}
	checkOut, err := s.ParseStayDate(req.CheckOutDate)
	if err != nil {
		return nil, invalidInput("Invalid check-out date: %s", req.CheckOutDate)
	}

	booking := &models.Booking{
		GuestID:         req.GuestID,
		RoomID:          req.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		SpecialRequests: req.SpecialRequests,
	}

	// runs after the room lookup, inside the insert transaction
	price := func(room *models.Room) (float64, error) {
		if err := models.ValidateStayDates(checkIn, checkOut); err != nil {
			return 0, invalidInput("Check-out date must be after check-in date")
		}
		return models.StayPrice(models.Nights(checkIn, checkOut), room.PricePerNight), nil
	}

	created, err := s.bookingRepo.Create(booking, price)
	if errors.Is(err, database.ErrReferenceMissing) {
		return nil, &database.NotFoundError{Entity: "Guest", ID: req.GuestID}
	}
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":   created.ID,
		"guest_id":     created.GuestID,
		"room_id":      created.RoomID,
		"total_amount": created.TotalAmount,
	}).Info("Booking created")

	return created, nil
}

// Update changes the supplied booking fields. Date order is checked only when
// both dates are supplied together; the total amount is never recomputed.
func (s *BookingService) Update(id uuid.UUID, req *models.UpdateBookingRequest) (*models.Booking, error) {
	changes := &models.BookingChanges{
		SpecialRequests: req.SpecialRequests,
	}

	if req.CheckInDate != nil {
		d, err := s.ParseStayDate(*req.CheckInDate)
		if err != nil {
			return nil, invalidInput("Invalid check-in date: %s", *req.CheckInDate)
		}
		changes.CheckInDate = &d
	}
	if req.CheckOutDate != nil {
		d, err := s.ParseStayDate(*req.CheckOutDate)
		if err != nil {
			return nil, invalidInput("Invalid check-out date: %s", *req.CheckOutDate)
		}
		changes.CheckOutDate = &d
	}
	if changes.CheckInDate != nil && changes.CheckOutDate != nil {
		if err := models.ValidateStayDates(*changes.CheckInDate, *changes.CheckOutDate); err != nil {
			return nil, invalidInput("Check-out date must be after check-in date")
		}
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, invalidInput("Invalid booking status: %s", *req.Status)
		}
		changes.Status = req.Status
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.IsValid() {
			return nil, invalidInput("Invalid payment status: %s", *req.PaymentStatus)
		}
		changes.PaymentStatus = req.PaymentStatus
	}

	booking, err := s.bookingRepo.Update(id, changes)
	if err != nil {
		return nil, err
	}

	if changes.Status != nil {
		s.logger.WithFields(logrus.Fields{
			"booking_id": id,
			"status":     *changes.Status,
		}).Info("Booking status changed")
	}

	return booking, nil
}

// GetAll lists every booking
func (s *BookingService) GetAll() ([]models.Booking, error) {
	return s.bookingRepo.GetAll()
}

// GetByID returns the booking row alone
func (s *BookingService) GetByID(id uuid.UUID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(id)
}

// GetWithDetails returns the booking joined with its guest and room
func (s *BookingService) GetWithDetails(id uuid.UUID) (*models.BookingWithDetails, error) {
	return s.bookingRepo.GetByIDWithDetails(id)
}

// GetByStatus lists bookings in the given status
func (s *BookingService) GetByStatus(status models.BookingStatus) ([]models.Booking, error) {
	if !status.IsValid() {
		return nil, invalidInput("Invalid booking status: %s", status)
	}
	return s.bookingRepo.GetByStatus(status)
}

// GetByGuestID lists a guest's bookings
func (s *BookingService) GetByGuestID(guestID uuid.UUID) ([]models.Booking, error) {
	return s.bookingRepo.GetByGuestID(guestID)
}

// GetByRoomID lists a room's bookings
func (s *BookingService) GetByRoomID(roomID uuid.UUID) ([]models.Booking, error) {
	return s.bookingRepo.GetByRoomID(roomID)
}

// GetTodayCheckIns lists pending or confirmed bookings arriving today
func (s *BookingService) GetTodayCheckIns() ([]models.BookingSummary, error) {
	return s.bookingRepo.GetCheckInsOn(s.Today())
}

// GetTodayCheckOuts lists checked-in bookings leaving today
func (s *BookingService) GetTodayCheckOuts() ([]models.BookingSummary, error) {
	return s.bookingRepo.GetCheckOutsOn(s.Today())
}

// Delete removes a booking. The room status is not touched.
func (s *BookingService) Delete(id uuid.UUID) error {
	if err := s.bookingRepo.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("booking_id", id).Info("Booking deleted")
	return nil
}

// GetStatistics returns booking counts and paid revenue
func (s *BookingService) GetStatistics() (*models.BookingStatistics, error) {
	return s.bookingRepo.GetStatistics()
}

package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked-in"
	BookingStatusCheckedOut BookingStatus = "checked-out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsValid reports whether s is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid reports whether s is one of the known payment statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// ErrInvalidStayDates is returned when check-out is not strictly after check-in
var ErrInvalidStayDates = errors.New("check-out date must be after check-in date")

// Booking represents a reservation of one room by one guest
type Booking struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	GuestID         uuid.UUID     `json:"guestId" db:"guest_id"`
	RoomID          uuid.UUID     `json:"roomId" db:"room_id"`
	CheckInDate     Date          `json:"checkInDate" db:"check_in_date"`
	CheckOutDate    Date          `json:"checkOutDate" db:"check_out_date"`
	Status          BookingStatus `json:"status" db:"status"`
	TotalAmount     float64       `json:"totalAmount" db:"total_amount"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" db:"payment_status"`
	SpecialRequests *string       `json:"specialRequests,omitempty" db:"special_requests"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

// BookingWithDetails is a booking joined with its guest and room
type BookingWithDetails struct {
	Booking
	Guest Guest `json:"guest"`
	Room  Room  `json:"room"`
}

// BookingSummary is a booking with the guest and room fields the front desk needs
type BookingSummary struct {
	Booking
	FirstName  string   `json:"firstName" db:"first_name"`
	LastName   string   `json:"lastName" db:"last_name"`
	Email      string   `json:"email" db:"email"`
	Phone      string   `json:"phone" db:"phone"`
	RoomNumber string   `json:"roomNumber" db:"room_number"`
	RoomType   RoomType `json:"type" db:"room_type"`
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	GuestID         uuid.UUID `json:"guestId" binding:"required"`
	RoomID          uuid.UUID `json:"roomId" binding:"required"`
	CheckInDate     string    `json:"checkInDate" binding:"required,staydate"`
	CheckOutDate    string    `json:"checkOutDate" binding:"required,staydate"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
}

// UpdateBookingRequest represents a partial booking update.
// Nil fields are left untouched.
type UpdateBookingRequest struct {
	CheckInDate     *string        `json:"checkInDate,omitempty" binding:"omitempty,staydate"`
	CheckOutDate    *string        `json:"checkOutDate,omitempty" binding:"omitempty,staydate"`
	Status          *BookingStatus `json:"status,omitempty" binding:"omitempty,bookingstatus"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus,omitempty" binding:"omitempty,paymentstatus"`
	SpecialRequests *string        `json:"specialRequests,omitempty"`
}

// BookingChanges is a validated partial booking update ready to be persisted
type BookingChanges struct {
	CheckInDate     *Date
	CheckOutDate    *Date
	Status          *BookingStatus
	PaymentStatus   *PaymentStatus
	SpecialRequests *string
}

// BookingStatistics holds booking counts per status and paid revenue
type BookingStatistics struct {
	Total        int     `json:"total" db:"total"`
	Pending      int     `json:"pending" db:"pending"`
	Confirmed    int     `json:"confirmed" db:"confirmed"`
	CheckedIn    int     `json:"checkedIn" db:"checked_in"`
	CheckedOut   int     `json:"checkedOut" db:"checked_out"`
	Cancelled    int     `json:"cancelled" db:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue" db:"total_revenue"`
}

// ValidateStayDates checks that check-out falls on a later calendar date than check-in
func ValidateStayDates(checkIn, checkOut Date) error {
	if !checkOut.After(checkIn.Time) {
		return ErrInvalidStayDates
	}
	return nil
}

// Nights returns the number of nights between two calendar dates
func Nights(checkIn, checkOut Date) int {
	days := checkOut.Sub(checkIn.Time).Hours() / 24
	return int(math.Ceil(days))
}

// StayPrice returns nights × nightly rate, rounded to cents
func StayPrice(nights int, pricePerNight float64) float64 {
	return math.Round(float64(nights)*pricePerNight*100) / 100
}

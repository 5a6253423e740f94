package models

import (
	"time"

	"github.com/google/uuid"
)

// Guest represents a person who may hold bookings
type Guest struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Address     *string   `json:"address,omitempty" db:"address"`
	IDNumber    string    `json:"idNumber" db:"id_number"`
	Nationality *string   `json:"nationality,omitempty" db:"nationality"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateGuestRequest represents the request to register a guest
type CreateGuestRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required,phone"`
	Address     *string `json:"address,omitempty"`
	IDNumber    string  `json:"idNumber" binding:"required"`
	Nationality *string `json:"nationality,omitempty"`
}

// UpdateGuestRequest represents a partial guest update.
// The identification number is fixed once registered.
type UpdateGuestRequest struct {
	FirstName   *string `json:"firstName,omitempty" binding:"omitempty,min=1"`
	LastName    *string `json:"lastName,omitempty" binding:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Address     *string `json:"address,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
}

// GuestStatistics holds guest counts
type GuestStatistics struct {
	Total        int `json:"total"`
	WithBookings int `json:"withBookings"`
}

// GuestBooking is a booking in a guest's history, with the booked room's number and type
type GuestBooking struct {
	Booking
	RoomNumber string   `json:"roomNumber" db:"room_number"`
	RoomType   RoomType `json:"roomType" db:"room_type"`
}

// GuestBookingHistory is a guest together with all of their bookings
type GuestBookingHistory struct {
	Guest
	Bookings []GuestBooking `json:"bookings"`
}

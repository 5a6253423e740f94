package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomType represents the category of a room
type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
	RoomTypeDeluxe RoomType = "deluxe"
)

// IsValid reports whether t is one of the known room types
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}
	return false
}

// RoomStatus represents the housekeeping state of a room
type RoomStatus string

const (
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// IsValid reports whether s is one of the known room statuses
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusVacant, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	}
	return false
}

// Room represents a rentable unit of the hotel
type Room struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	RoomNumber    string     `json:"roomNumber" db:"room_number"`
	Floor         int        `json:"floor" db:"floor"`
	Type          RoomType   `json:"type" db:"type"`
	Status        RoomStatus `json:"status" db:"status"`
	PricePerNight float64    `json:"pricePerNight" db:"price_per_night"`
	Capacity      int        `json:"capacity" db:"capacity"`
	Amenities     Amenities  `json:"amenities" db:"amenities"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// CreateRoomRequest represents the request to create a room
type CreateRoomRequest struct {
	RoomNumber    string   `json:"roomNumber" binding:"required"`
	Floor         *int     `json:"floor" binding:"required"`
	Type          RoomType `json:"type" binding:"required,roomtype"`
	PricePerNight float64  `json:"pricePerNight" binding:"required,gt=0"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	Amenities     []string `json:"amenities"`
}

// UpdateRoomRequest represents a partial room update.
// Nil fields are left untouched.
type UpdateRoomRequest struct {
	RoomNumber    *string     `json:"roomNumber,omitempty" binding:"omitempty,min=1"`
	Floor         *int        `json:"floor,omitempty"`
	Type          *RoomType   `json:"type,omitempty" binding:"omitempty,roomtype"`
	Status        *RoomStatus `json:"status,omitempty" binding:"omitempty,roomstatus"`
	PricePerNight *float64    `json:"pricePerNight,omitempty" binding:"omitempty,gt=0"`
	Capacity      *int        `json:"capacity,omitempty" binding:"omitempty,gt=0"`
	Amenities     *[]string   `json:"amenities,omitempty"`
}

// RoomStatistics holds room counts grouped by status
type RoomStatistics struct {
	Total       int `json:"total" db:"total"`
	Vacant      int `json:"vacant" db:"vacant"`
	Occupied    int `json:"occupied" db:"occupied"`
	Cleaning    int `json:"cleaning" db:"cleaning"`
	Maintenance int `json:"maintenance" db:"maintenance"`
}

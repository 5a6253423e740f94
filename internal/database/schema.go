package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements create the hotel tables and indexes. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id UUID PRIMARY KEY,
		room_number TEXT NOT NULL UNIQUE,
		floor INTEGER NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('single', 'double', 'suite', 'deluxe')),
		status TEXT NOT NULL DEFAULT 'vacant' CHECK (status IN ('vacant', 'occupied', 'cleaning', 'maintenance')),
		price_per_night NUMERIC(10, 2) NOT NULL CHECK (price_per_night > 0),
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		amenities TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS guests (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		address TEXT,
		id_number TEXT NOT NULL UNIQUE,
		nationality TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		guest_id UUID NOT NULL REFERENCES guests(id) ON DELETE CASCADE,
		room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
		check_in_date DATE NOT NULL,
		check_out_date DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'checked-in', 'checked-out', 'cancelled')),
		total_amount NUMERIC(12, 2) NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'unpaid' CHECK (payment_status IN ('unpaid', 'partial', 'paid', 'refunded')),
		special_requests TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_status ON rooms(status)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_floor ON rooms(floor)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings(check_in_date, check_out_date)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
}

// Migrate creates the schema if it does not exist yet
func Migrate(db *sqlx.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Truncate removes every row from the hotel tables
func Truncate(db *sqlx.DB) error {
	if _, err := db.Exec(`TRUNCATE TABLE bookings, guests, rooms CASCADE`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

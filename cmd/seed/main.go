package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/config"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/models"
	"github.com/virtualhotel/hotel-backend/internal/router"
)

type seedRoom struct {
	number    string
	floor     int
	roomType  models.RoomType
	price     float64
	capacity  int
	amenities []string
}

var rooms = []seedRoom{
	{"101", 1, models.RoomTypeSingle, 80, 1, []string{"WiFi", "TV"}},
	{"102", 1, models.RoomTypeSingle, 80, 1, []string{"WiFi", "TV"}},
	{"103", 1, models.RoomTypeDouble, 120, 2, []string{"WiFi", "TV", "Mini Bar"}},
	{"104", 1, models.RoomTypeDouble, 120, 2, []string{"WiFi", "TV", "Mini Bar"}},

	{"201", 2, models.RoomTypeDouble, 130, 2, []string{"WiFi", "TV", "Mini Bar", "Balcony"}},
	{"202", 2, models.RoomTypeSuite, 200, 3, []string{"WiFi", "TV", "Mini Bar", "Balcony", "Jacuzzi"}},
	{"203", 2, models.RoomTypeSuite, 200, 3, []string{"WiFi", "TV", "Mini Bar", "Balcony", "Jacuzzi"}},
	{"204", 2, models.RoomTypeDouble, 130, 2, []string{"WiFi", "TV", "Mini Bar", "Balcony"}},

	{"301", 3, models.RoomTypeSuite, 220, 3, []string{"WiFi", "TV", "Mini Bar", "Balcony", "Jacuzzi", "City View"}},
	{"302", 3, models.RoomTypeDeluxe, 350, 4, []string{"WiFi", "TV", "Mini Bar", "Balcony", "Jacuzzi", "City View", "Kitchen"}},
	{"303", 3, models.RoomTypeDeluxe, 350, 4, []string{"WiFi", "TV", "Mini Bar", "Balcony", "Jacuzzi", "City View", "Kitchen"}},
	{"304", 3, models.RoomTypeSuite, 220, 3, []string{"WiFi", "TV", "Mini Bar", "Balcony", "Jacuzzi", "City View"}},
}

var guests = []models.CreateGuestRequest{
	{FirstName: "John", LastName: "Smith", Email: "john.smith@email.com", Phone: "+1-555-0101", IDNumber: "ID001", Nationality: str("USA"), Address: str("123 Main St, New York")},
	{FirstName: "Emma", LastName: "Johnson", Email: "emma.j@email.com", Phone: "+1-555-0102", IDNumber: "ID002", Nationality: str("Canada"), Address: str("456 Maple Ave, Toronto")},
	{FirstName: "Michael", LastName: "Brown", Email: "mbrown@email.com", Phone: "+1-555-0103", IDNumber: "ID003", Nationality: str("UK"), Address: str("789 Oak Rd, London")},
	{FirstName: "Sarah", LastName: "Davis", Email: "sarah.davis@email.com", Phone: "+1-555-0104", IDNumber: "ID004", Nationality: str("Australia"), Address: str("321 Beach Blvd, Sydney")},
	{FirstName: "David", LastName: "Wilson", Email: "dwilson@email.com", Phone: "+1-555-0105", IDNumber: "ID005", Nationality: str("USA"), Address: str("654 Pine St, Los Angeles")},
	{FirstName: "Lisa", LastName: "Martinez", Email: "lisa.m@email.com", Phone: "+1-555-0106", IDNumber: "ID006", Nationality: str("Spain"), Address: str("987 Elm Dr, Madrid")},
}

// seedBooking refers to guests and rooms by their position in the lists above.
// Offsets are days relative to today.
type seedBooking struct {
	guest, room       int
	checkIn, checkOut int
	status            models.BookingStatus
	specialRequests   *string
}

var bookings = []seedBooking{
	// in house
	{0, 2, -7, 1, models.BookingStatusCheckedIn, str("Late checkout if possible")},
	{1, 5, -7, 7, models.BookingStatusCheckedIn, str("Extra pillows")},
	// arriving today
	{2, 0, 0, 7, models.BookingStatusConfirmed, nil},
	{3, 4, 0, 7, models.BookingStatusConfirmed, str("Quiet room please")},
	// upcoming
	{4, 9, 1, 7, models.BookingStatusConfirmed, str("High floor")},
	{5, 10, 1, 7, models.BookingStatusConfirmed, nil},
}

var roomStatuses = map[int]models.RoomStatus{
	2: models.RoomStatusOccupied,
	5: models.RoomStatusOccupied,
	1: models.RoomStatusCleaning,
	3: models.RoomStatusCleaning,
}

func str(s string) *string { return &s }

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Truncate(db.DB); err != nil {
		logger.Fatalf("Failed to clear existing data: %v", err)
	}
	logger.Info("Cleared existing data")

	// Seeding goes through the services so the data obeys the same rules as the API
	quiet := logrus.New()
	quiet.SetLevel(logrus.WarnLevel)
	svc, err := router.NewServices(cfg, quiet, db)
	if err != nil {
		logger.Fatalf("Failed to build services: %v", err)
	}
	roomService, guestService, bookingService := svc.Rooms, svc.Guests, svc.Bookings

	roomIDs := make([]uuid.UUID, len(rooms))
	for i, r := range rooms {
		floor := r.floor
		room, err := roomService.Create(&models.CreateRoomRequest{
			RoomNumber:    r.number,
			Floor:         &floor,
			Type:          r.roomType,
			PricePerNight: r.price,
			Capacity:      r.capacity,
			Amenities:     r.amenities,
		})
		if err != nil {
			logger.Fatalf("Failed to create room %s: %v", r.number, err)
		}
		roomIDs[i] = room.ID
	}
	logger.Infof("Created %d rooms", len(rooms))

	guestIDs := make([]uuid.UUID, len(guests))
	for i := range guests {
		guest, err := guestService.Create(&guests[i])
		if err != nil {
			logger.Fatalf("Failed to create guest %s: %v", guests[i].Email, err)
		}
		guestIDs[i] = guest.ID
	}
	logger.Infof("Created %d guests", len(guests))

	today := bookingService.Today()
	for _, b := range bookings {
		booking, err := bookingService.Create(&models.CreateBookingRequest{
			GuestID:         guestIDs[b.guest],
			RoomID:          roomIDs[b.room],
			CheckInDate:     today.AddDate(0, 0, b.checkIn).Format(models.DateLayout),
			CheckOutDate:    today.AddDate(0, 0, b.checkOut).Format(models.DateLayout),
			SpecialRequests: b.specialRequests,
		})
		if err != nil {
			logger.Fatalf("Failed to create booking for %s: %v", guests[b.guest].Email, err)
		}

		status := b.status
		if _, err := bookingService.Update(booking.ID, &models.UpdateBookingRequest{Status: &status}); err != nil {
			logger.Fatalf("Failed to set booking %s status: %v", booking.ID, err)
		}
	}
	logger.Infof("Created %d bookings", len(bookings))

	for i, status := range roomStatuses {
		status := status
		if _, err := roomService.Update(roomIDs[i], &models.UpdateRoomRequest{Status: &status}); err != nil {
			logger.Fatalf("Failed to set room %s status: %v", rooms[i].number, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"rooms":    len(rooms),
		"guests":   len(guests),
		"bookings": len(bookings),
	}).Info("Database seeded successfully")
}

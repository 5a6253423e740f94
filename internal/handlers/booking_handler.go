package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/virtualhotel/hotel-backend/internal/models"
	"github.com/virtualhotel/hotel-backend/internal/services"
)

const msgStayOrder = "Check-out date must be after check-in date"

// BookingHandler handles booking API endpoints
type BookingHandler struct {
	bookingService *services.BookingService
	resp           *Responder
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService, resp *Responder) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		resp:           resp,
	}
}

// stayOrderValid reports whether check-out falls on a later calendar date than check-in.
// Unparseable values are left for the service to reject.
func (h *BookingHandler) stayOrderValid(checkIn, checkOut string) bool {
	in, err := h.bookingService.ParseStayDate(checkIn)
	if err != nil {
		return true
	}
	out, err := h.bookingService.ParseStayDate(checkOut)
	if err != nil {
		return true
	}
	return models.ValidateStayDates(in, out) == nil
}

// GetAll lists every booking
// GET /api/v1/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	bookings, err := h.bookingService.GetAll()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, bookings, "")
}

// GetTodayCheckIns lists today's expected arrivals
// GET /api/v1/bookings/today/check-ins
func (h *BookingHandler) GetTodayCheckIns(c *gin.Context) {
	arrivals, err := h.bookingService.GetTodayCheckIns()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, arrivals, "")
}

// GetTodayCheckOuts lists today's expected departures
// GET /api/v1/bookings/today/check-outs
func (h *BookingHandler) GetTodayCheckOuts(c *gin.Context) {
	departures, err := h.bookingService.GetTodayCheckOuts()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, departures, "")
}

// GetStatistics returns booking counts and paid revenue
// GET /api/v1/bookings/statistics
func (h *BookingHandler) GetStatistics(c *gin.Context) {
	stats, err := h.bookingService.GetStatistics()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, stats, "")
}

// GetByStatus lists bookings in a status
// GET /api/v1/bookings/status/:status
func (h *BookingHandler) GetByStatus(c *gin.Context) {
	bookings, err := h.bookingService.GetByStatus(models.BookingStatus(c.Param("status")))
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, bookings, "")
}

// GetByGuest lists a guest's bookings
// GET /api/v1/bookings/guest/:guestId
func (h *BookingHandler) GetByGuest(c *gin.Context) {
	guestID, ok := h.resp.parseIDParam(c, "guestId")
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetByGuestID(guestID)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, bookings, "")
}

// GetByRoom lists a room's bookings
// GET /api/v1/bookings/room/:roomId
func (h *BookingHandler) GetByRoom(c *gin.Context) {
	roomID, ok := h.resp.parseIDParam(c, "roomId")
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetByRoomID(roomID)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, bookings, "")
}

// GetByID returns one booking
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, booking, "")
}

// GetDetails returns one booking with its guest and room
// GET /api/v1/bookings/:id/details
func (h *BookingHandler) GetDetails(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.bookingService.GetWithDetails(id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, details, "")
}

// Create books a room
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.BindError(c, err)
		return
	}

	if !h.stayOrderValid(req.CheckInDate, req.CheckOutDate) {
		h.resp.BadRequest(c, msgStayOrder)
		return
	}

	booking, err := h.bookingService.Create(&req)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Created(c, booking, "Booking created successfully")
}

// Update changes the supplied booking fields
// PUT /api/v1/bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.BindError(c, err)
		return
	}

	if req.CheckInDate != nil && req.CheckOutDate != nil && !h.stayOrderValid(*req.CheckInDate, *req.CheckOutDate) {
		h.resp.BadRequest(c, msgStayOrder)
		return
	}

	booking, err := h.bookingService.Update(id, &req)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, booking, "Booking updated successfully")
}

// Delete removes a booking
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.Delete(id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, nil, "Booking deleted successfully")
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/virtualhotel/hotel-backend/internal/models"
	"github.com/virtualhotel/hotel-backend/internal/services"
)

// GuestHandler handles guest API endpoints
type GuestHandler struct {
	guestService *services.GuestService
	resp         *Responder
}

// NewGuestHandler creates a new GuestHandler
func NewGuestHandler(guestService *services.GuestService, resp *Responder) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
		resp:         resp,
	}
}

// GetAll lists every guest
// GET /api/v1/guests
func (h *GuestHandler) GetAll(c *gin.Context) {
	guests, err := h.guestService.GetAll()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, guests, "")
}

// Search finds guests by first or last name
// GET /api/v1/guests/search?query=
func (h *GuestHandler) Search(c *gin.Context) {
	guests, err := h.guestService.SearchByName(c.Query("query"))
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, guests, "")
}

// GetStatistics returns guest counts
// GET /api/v1/guests/statistics
func (h *GuestHandler) GetStatistics(c *gin.Context) {
	stats, err := h.guestService.GetStatistics()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, stats, "")
}

// GetByID returns one guest
// GET /api/v1/guests/:id
func (h *GuestHandler) GetByID(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	guest, err := h.guestService.GetByID(id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, guest, "")
}

// GetWithBookings returns a guest with their booking history
// GET /api/v1/guests/:id/bookings
func (h *GuestHandler) GetWithBookings(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.guestService.GetWithBookings(id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, history, "")
}

// Create registers a guest
// POST /api/v1/guests
func (h *GuestHandler) Create(c *gin.Context) {
	var req models.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.BindError(c, err)
		return
	}

	guest, err := h.guestService.Create(&req)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Created(c, guest, "Guest created successfully")
}

// Update changes the supplied guest fields
// PUT /api/v1/guests/:id
func (h *GuestHandler) Update(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.BindError(c, err)
		return
	}

	guest, err := h.guestService.Update(id, &req)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, guest, "Guest updated successfully")
}

// Delete removes a guest and their bookings
// DELETE /api/v1/guests/:id
func (h *GuestHandler) Delete(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.guestService.Delete(id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, nil, "Guest deleted successfully")
}

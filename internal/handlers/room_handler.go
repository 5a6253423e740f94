package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/virtualhotel/hotel-backend/internal/models"
	"github.com/virtualhotel/hotel-backend/internal/services"
)

// RoomHandler handles room API endpoints
type RoomHandler struct {
	roomService *services.RoomService
	resp        *Responder
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *services.RoomService, resp *Responder) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		resp:        resp,
	}
}

// GetAll lists every room
// GET /api/v1/rooms
func (h *RoomHandler) GetAll(c *gin.Context) {
	rooms, err := h.roomService.GetAll()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, rooms, "")
}

// GetAvailable lists vacant rooms
// GET /api/v1/rooms/available
func (h *RoomHandler) GetAvailable(c *gin.Context) {
	rooms, err := h.roomService.GetAvailable()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, rooms, "")
}

// GetStatistics returns room counts per status
// GET /api/v1/rooms/statistics
func (h *RoomHandler) GetStatistics(c *gin.Context) {
	stats, err := h.roomService.GetStatistics()
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, stats, "")
}

// GetByStatus lists rooms in a status
// GET /api/v1/rooms/status/:status
func (h *RoomHandler) GetByStatus(c *gin.Context) {
	rooms, err := h.roomService.GetByStatus(models.RoomStatus(c.Param("status")))
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, rooms, "")
}

// GetByFloor lists rooms on a floor
// GET /api/v1/rooms/floor/:floor
func (h *RoomHandler) GetByFloor(c *gin.Context) {
	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil {
		h.resp.BadRequest(c, "Floor must be an integer")
		return
	}

	rooms, err := h.roomService.GetByFloor(floor)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, rooms, "")
}

// GetByID returns one room
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetByID(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.GetByID(id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, room, "")
}

// Create registers a room
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.BindError(c, err)
		return
	}

	room, err := h.roomService.Create(&req)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Created(c, room, "Room created successfully")
}

// Update changes the supplied room fields
// PUT /api/v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.BindError(c, err)
		return
	}

	room, err := h.roomService.Update(id, &req)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, room, "Room updated successfully")
}

// Delete removes a room and its bookings
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := h.resp.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.Delete(id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, nil, "Room deleted successfully")
}

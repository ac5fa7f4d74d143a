package handler

import (
	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/request"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// RoomHandler handles room board HTTP requests. Room numbers such as
// "11/13" arrive URL-encoded in the :number parameter.
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// location resolves the :location parameter, writing a 400 when unknown
func location(c *gin.Context) (string, bool) {
	loc := c.Param("location")
	if _, ok := entity.GetLocation(loc); !ok {
		response.Error(c, service.ErrUnknownLocation)
		return "", false
	}
	return loc, true
}

// Initialize loads the branch's rooms from the cloud, seeding defaults
// on first use
func (h *RoomHandler) Initialize(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	rooms, err := h.roomService.InitializeRooms(c.Request.Context(), loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Rooms initialized", rooms)
}

func (h *RoomHandler) List(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	var (
		rooms []entity.Room
		err   error
	)
	if c.Query("available") == "true" {
		rooms, err = h.roomService.Available(c.Request.Context(), loc)
	} else {
		rooms, err = h.roomService.List(c.Request.Context(), loc)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Rooms retrieved successfully", rooms)
}

func (h *RoomHandler) Floors(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	floors, err := h.roomService.ByFloor(c.Request.Context(), loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Rooms retrieved successfully", floors)
}

func (h *RoomHandler) Stats(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	stats, err := h.roomService.Stats(c.Request.Context(), loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Room statistics retrieved successfully", stats)
}

func (h *RoomHandler) Get(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	room, err := h.roomService.Get(c.Request.Context(), loc, c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Room retrieved successfully", room)
}

// CheckIn occupies an available room
// @Summary Check in
// @Tags rooms
// @Accept json
// @Produce json
// @Param location path string true "Branch id"
// @Param number path string true "Room number"
// @Param request body request.CheckInRequest true "Guest"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /rooms/{location}/{number}/check-in [post]
func (h *RoomHandler) CheckIn(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	var req request.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	room, err := h.roomService.CheckIn(c.Request.Context(), loc, c.Param("number"), req.GuestName, req.CheckIn)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Guest checked in", room)
}

// CheckOut frees a room without touching receipts
func (h *RoomHandler) CheckOut(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	var req request.CheckOutRequest
	// the body is optional
	_ = c.ShouldBindJSON(&req)

	result, err := h.roomService.CheckOut(c.Request.Context(), loc, c.Param("number"), req.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Room checked out", result)
}

func (h *RoomHandler) SetMaintenance(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	room, err := h.roomService.SetMaintenance(c.Request.Context(), loc, c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Room set to maintenance", room)
}

func (h *RoomHandler) SetAvailable(c *gin.Context) {
	loc, ok := location(c)
	if !ok {
		return
	}
	room, err := h.roomService.SetAvailable(c.Request.Context(), loc, c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Room is available", room)
}

package controllers

import (
	"uninest/dto"
	"uninest/middleware"
	"uninest/response"
	"uninest/services"

	"github.com/gin-gonic/gin"
)

// RoomController serves the room-type inventory endpoints.
type RoomController struct {
	hostels *services.HostelService
}

func NewRoomController(hostels *services.HostelService) *RoomController {
	return &RoomController{hostels: hostels}
}

// List handles GET /hostels/:id/roomTypes.
func (ctl *RoomController) List(c *gin.Context) {
	hostelID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	rooms, err := ctl.hostels.ListRoomTypes(hostelID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, rooms)
}

// Create handles POST /hostels/:id/roomTypes.
func (ctl *RoomController) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	hostelID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	room, err := ctl.hostels.CreateRoomType(actor, hostelID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, services.ToRoomTypeResponse(room))
}

// Update handles PUT /roomTypes/:id.
func (ctl *RoomController) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	roomTypeID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	room, err := ctl.hostels.UpdateRoomType(actor, roomTypeID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, services.ToRoomTypeResponse(room))
}

package controllers

import (
	"uninest/dto"
	"uninest/middleware"
	"uninest/response"
	"uninest/services"
	"uninest/validator"

	"github.com/gin-gonic/gin"
)

// BookingController serves the booking lifecycle endpoints.
type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// Create handles POST /bookings.
func (ctl *BookingController) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := validator.ValidateBookingDates(req.StartDate, req.EndDate); err != nil {
		handleServiceError(c, err)
		return
	}

	booking, err := ctl.bookings.Create(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, toBookingResponse(booking))
}

// Get handles GET /bookings/:id.
func (ctl *BookingController) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	booking, err := ctl.bookings.Get(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toBookingResponse(booking))
}

// List handles GET /bookings.
func (ctl *BookingController) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	query := dto.BookingListQuery{
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 0),
		Limit:  queryInt(c, "limit", 10),
	}

	bookings, total, err := ctl.bookings.List(c.Request.Context(), actor, query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingResponse(&b))
	}
	response.SuccessWithPagination(c, items, query.Page, query.Limit, int(total))
}

// UpdateStatus handles PUT /bookings/:id.
func (ctl *BookingController) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	booking, err := ctl.bookings.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, toBookingResponse(booking))
}

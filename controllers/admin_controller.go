package controllers

import (
	"uninest/dto"
	"uninest/middleware"
	"uninest/response"
	"uninest/services"

	"github.com/gin-gonic/gin"
)

// AdminController serves the moderation endpoints. Every route here sits
// behind the admin role check in the router.
type AdminController struct {
	users    *services.UserService
	hostels  *services.HostelService
	bookings *services.BookingService
}

func NewAdminController(users *services.UserService, hostels *services.HostelService, bookings *services.BookingService) *AdminController {
	return &AdminController{users: users, hostels: hostels, bookings: bookings}
}

// ListUsers handles GET /admin/users.
func (ctl *AdminController) ListUsers(c *gin.Context) {
	filter := services.AdminUserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 0),
		Limit:  queryInt(c, "limit", 50),
	}

	items, total, err := ctl.users.ListUsers(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithPagination(c, items, filter.Page, filter.Limit, int(total))
}

// VerifyUser handles PUT /admin/users/:id/verify.
func (ctl *AdminController) VerifyUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.VerifyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsVerified == nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	user, err := ctl.users.SetVerified(id, *req.IsVerified)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, services.ToUserResponse(user))
}

// ListHostels handles GET /admin/hostels, including inactive listings.
func (ctl *AdminController) ListHostels(c *gin.Context) {
	page := queryInt(c, "page", 0)
	limit := queryInt(c, "limit", 50)

	items, total, err := ctl.hostels.ListAll(page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithPagination(c, items, page, limit, int(total))
}

// ListBookings handles GET /admin/bookings. The search matches student
// name or email and hostel name or address.
func (ctl *AdminController) ListBookings(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	query := dto.BookingListQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 0),
		Limit:  queryInt(c, "limit", 50),
	}
	if query.Status == "all" {
		query.Status = ""
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

// UpdateHostel handles PUT /admin/hostels/:id, typically to toggle the
// active flag during moderation.
func (ctl *AdminController) UpdateHostel(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	hostel, err := ctl.hostels.Update(actor, id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, services.ToHostelResponse(hostel))
}

// Stats handles GET /admin/stats.
func (ctl *AdminController) Stats(c *gin.Context) {
	stats, err := ctl.users.Stats()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, stats)
}

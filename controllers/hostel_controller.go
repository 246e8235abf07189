package controllers

import (
	"uninest/dto"
	"uninest/middleware"
	"uninest/response"
	"uninest/services"

	"github.com/gin-gonic/gin"
)

// HostelController serves listing search, detail and owner CRUD.
type HostelController struct {
	hostels *services.HostelService
}

func NewHostelController(hostels *services.HostelService) *HostelController {
	return &HostelController{hostels: hostels}
}

// Search handles GET /hostels.
func (ctl *HostelController) Search(c *gin.Context) {
	query := dto.HostelSearchQuery{
		Query:        c.Query("q"),
		UniversityID: uint(queryInt(c, "universityId", 0)),
		MinPrice:     queryFloat(c, "minPrice"),
		MaxPrice:     queryFloat(c, "maxPrice"),
		Page:         queryInt(c, "page", 0),
		Limit:        queryInt(c, "limit", 10),
	}

	items, total, err := ctl.hostels.Search(query)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithPagination(c, items, query.Page, query.Limit, int(total))
}

// GetDetail handles GET /hostels/:id.
func (ctl *HostelController) GetDetail(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctl.hostels.GetDetail(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

// Create handles POST /hostels (hostel owner).
func (ctl *HostelController) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req dto.CreateHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	hostel, err := ctl.hostels.Create(actor.ID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, services.ToHostelResponse(hostel))
}

// Update handles PUT /hostels/:id (owner of the hostel or admin).
func (ctl *HostelController) Update(c *gin.Context) {
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

// Delete handles DELETE /hostels/:id. The listing is deactivated, not
// removed; history stays queryable.
func (ctl *HostelController) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.hostels.Delete(actor, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// ListMine handles GET /hostels/mine, the owner dashboard list.
func (ctl *HostelController) ListMine(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	items, err := ctl.hostels.ListByOwner(actor.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, items)
}

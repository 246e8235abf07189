package controllers

import (
	"uninest/dto"
	"uninest/middleware"
	"uninest/response"
	"uninest/services"
	"uninest/validator"

	"github.com/gin-gonic/gin"
)

// ReviewController serves hostel reviews.
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// List handles GET /reviews filtered by hostelId or studentId.
func (ctl *ReviewController) List(c *gin.Context) {
	filter := services.ReviewFilter{
		HostelID:  uint(queryInt(c, "hostelId", 0)),
		StudentID: uint(queryInt(c, "studentId", 0)),
		Page:      queryInt(c, "page", 0),
		Limit:     queryInt(c, "limit", 10),
	}

	items, total, err := ctl.reviews.List(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithPagination(c, items, filter.Page, filter.Limit, int(total))
}

// Create handles POST /reviews (student only).
func (ctl *ReviewController) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := validator.ValidateRating(req.Rating); err != nil {
		handleServiceError(c, err)
		return
	}

	review, err := ctl.reviews.Create(actor.ID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, services.ToReviewResponse(review))
}

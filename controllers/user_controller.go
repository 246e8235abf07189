package controllers

import (
	"uninest/dto"
	"uninest/middleware"
	"uninest/response"
	"uninest/services"
	"uninest/validator"

	"github.com/gin-gonic/gin"
)

// UserController serves the authenticated profile endpoints.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GetProfile handles GET /profile.
func (ctl *UserController) GetProfile(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	user, err := ctl.users.GetByID(actor.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, services.ToUserResponse(user))
}

// UpdateProfile handles PUT /profile.
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if req.Phone != nil {
		if err := validator.ValidatePhone(*req.Phone); err != nil {
			handleServiceError(c, err)
			return
		}
	}

	user, err := ctl.users.UpdateProfile(actor.ID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, services.ToUserResponse(user))
}

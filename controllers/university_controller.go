package controllers

import (
	"uninest/response"
	"uninest/services"

	"github.com/gin-gonic/gin"
)

// UniversityController serves the university directory.
type UniversityController struct {
	universities *services.UniversityService
}

func NewUniversityController(universities *services.UniversityService) *UniversityController {
	return &UniversityController{universities: universities}
}

// List handles GET /universities.
func (ctl *UniversityController) List(c *gin.Context) {
	items, err := ctl.universities.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, items)
}

package controllers

import (
	"uninest/config"
	"uninest/dto"
	"uninest/response"
	"uninest/services"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// AuthController serves registration and login.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register.
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	user, err := ctl.auth.Register(req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, services.ToUserResponse(user))
}

// Login handles POST /auth/login.
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	user, token, err := ctl.auth.Login(req.Email, req.Password)
	if err != nil {
		// Credential failures all look the same to the caller.
		response.Unauthorized(c)
		return
	}
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        services.ToUserResponse(user),
	})
}

// LoginGoogle handles POST /auth/google. The ID token is verified against
// the configured OAuth client before any account is touched.
func (ctl *AuthController) LoginGoogle(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, config.GetEnv("GOOGLE_CLIENT_ID"))
	if err != nil {
		response.Unauthorized(c)
		return
	}

	email, _ := payload.Claims["email"].(string)
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)
	avatar, _ := payload.Claims["picture"].(string)
	if email == "" {
		response.Unauthorized(c)
		return
	}

	user, token, err := ctl.auth.LoginGoogle(email, firstName, lastName, avatar)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        services.ToUserResponse(user),
	})
}

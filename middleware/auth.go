package middleware

import (
	"strings"

	"uninest/response"
	"uninest/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and, when roles are given,
// requires the caller to hold one of them.
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// ActorFromContext rebuilds the authenticated actor stored by
// AuthMiddleware. ok is false on unauthenticated requests.
func ActorFromContext(c *gin.Context) (services.Actor, bool) {
	userID, idOK := c.Get("userID")
	userRole, roleOK := c.Get("userRole")
	if !idOK || !roleOK {
		return services.Actor{}, false
	}
	return services.Actor{ID: userID.(uint), Role: userRole.(int)}, true
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"uninest/constants"
	"uninest/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(roles ...int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(roles...), func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")

	token, err := services.GenerateToken(services.UserInfo{UserID: 7, Role: constants.RoleStudent}, 60)
	require.NoError(t, err)

	t.Run("valid token passes", func(t *testing.T) {
		w := doRequest(newAuthTestRouter(), token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		w := doRequest(newAuthTestRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		w := doRequest(newAuthTestRouter(), "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		w := doRequest(newAuthTestRouter(constants.RoleStudent, constants.RoleAdmin), token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		w := doRequest(newAuthTestRouter(constants.RoleAdmin), token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("assigns a session id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.NotEmpty(t, w.Header().Get("X-Session-ID"))
	})

	t.Run("echoes an existing session id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Session-ID", "session-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "session-123", w.Header().Get("X-Session-ID"))
	})
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"uninest/constants"
	"uninest/errors"
	"uninest/middleware"
	"uninest/models"
	"uninest/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is a minimal in-memory BookingStore for HTTP-level tests.
type memoryStore struct {
	mu       sync.Mutex
	bookings map[uint]*models.Booking
	roomType models.RoomType
	hostel   models.Hostel
	nextID   uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		bookings: map[uint]*models.Booking{},
		roomType: models.RoomType{ID: 1, HostelID: 1, Name: "Double", PricePerMonth: 200, AvailableCount: 2, TotalCount: 2},
		hostel:   models.Hostel{ID: 1, OwnerID: ownerUserID, Name: "Sunrise Hostel", IsActive: true},
		nextID:   1,
	}
}

func (m *memoryStore) Create(ctx context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = m.nextID
	m.nextID++
	clone := *booking
	m.bookings[booking.ID] = &clone
	return nil
}

func (m *memoryStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(id)
}

func (m *memoryStore) load(id uint) (*models.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	clone := *booking
	hostel := m.hostel
	roomType := m.roomType
	clone.Hostel = &hostel
	clone.RoomType = &roomType
	return &clone, nil
}

func (m *memoryStore) List(ctx context.Context, filter services.BookingFilter) ([]models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id, b := range m.bookings {
		if filter.StudentID != 0 && b.StudentID != filter.StudentID {
			continue
		}
		if filter.HostelOwnerID != 0 && m.hostel.OwnerID != filter.HostelOwnerID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		loaded, _ := m.load(id)
		out = append(out, *loaded)
	}
	return out, int64(len(out)), nil
}

func (m *memoryStore) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != m.roomType.ID {
		return nil, errors.ErrRoomTypeNotFound
	}
	clone := m.roomType
	return &clone, nil
}

func (m *memoryStore) Transition(ctx context.Context, bookingID uint, from, to int) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	if booking.Status != from {
		return nil, errors.ErrInvalidTransition
	}
	if to == models.BookingStatusConfirmed {
		if m.roomType.AvailableCount <= 0 {
			return nil, errors.ErrNoRoomsAvailable
		}
		m.roomType.AvailableCount--
	}
	if from == models.BookingStatusConfirmed && to == models.BookingStatusCancelled {
		m.roomType.AvailableCount++
	}
	booking.Status = to
	return m.load(bookingID)
}

func (m *memoryStore) ListConfirmedEndedBefore(ctx context.Context, deadline time.Time) ([]models.Booking, error) {
	return nil, nil
}

var _ services.BookingStore = (*memoryStore)(nil)

const (
	studentUserID  = 10
	ownerUserID    = 20
	adminUserID    = 30
	strangerUserID = 99
)

func newBookingTestRouter(t *testing.T) (*gin.Engine, *memoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemoryStore()
	svc := services.NewBookingService(services.BookingServiceOptions{Store: store})
	ctl := NewBookingController(svc)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/bookings", middleware.AuthMiddleware(constants.RoleStudent), ctl.Create)
	v1.GET("/bookings", middleware.AuthMiddleware(), ctl.List)
	v1.GET("/bookings/:id", middleware.AuthMiddleware(), ctl.Get)
	v1.PUT("/bookings/:id", middleware.AuthMiddleware(), ctl.UpdateStatus)
	return router, store
}

func tokenFor(t *testing.T, userID uint, role int) string {
	t.Helper()
	token, err := services.GenerateToken(services.UserInfo{UserID: userID, Role: role}, 60)
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createBookingRequest() map[string]interface{} {
	return map[string]interface{}{
		"hostelId":   1,
		"roomTypeId": 1,
		"startDate":  "2026-09-01T00:00:00Z",
		"endDate":    "2026-12-01T00:00:00Z",
	}
}

func TestBookingEndpoints(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")

	studentToken := tokenFor(t, studentUserID, constants.RoleStudent)
	ownerToken := tokenFor(t, ownerUserID, constants.RoleHostelOwner)
	strangerToken := tokenFor(t, strangerUserID, constants.RoleStudent)

	t.Run("student creates a booking", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data struct {
				ID         uint    `json:"id"`
				Status     string  `json:"status"`
				TotalPrice float64 `json:"totalPrice"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Data.Status)
		assert.Equal(t, float64(800), resp.Data.TotalPrice)
	})

	t.Run("owner cannot hit the create route", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", ownerToken, createBookingRequest())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated create is 401", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", "", createBookingRequest())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("owner confirms, stranger is refused with 403", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, http.MethodPut, "/api/v1/bookings/1", strangerToken,
			map[string]string{"status": "confirmed"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, http.MethodPut, "/api/v1/bookings/1", ownerToken,
			map[string]string{"status": "confirmed"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Status string `json:"status"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "confirmed", resp.Data.Status)
	})

	t.Run("illegal edge returns 400 and leaves state alone", func(t *testing.T) {
		router, store := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
		require.Equal(t, http.StatusCreated, w.Code)

		// pending -> completed is not an edge of the machine.
		w = doJSON(router, http.MethodPut, "/api/v1/bookings/1", studentToken,
			map[string]string{"status": "completed"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		stored, err := store.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, stored.Status)
	})

	t.Run("unknown status label is 400", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, http.MethodPut, "/api/v1/bookings/1", studentToken,
			map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get scopes visibility", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
		require.Equal(t, http.StatusCreated, w.Code)

		for name, token := range map[string]string{
			"student": studentToken,
			"owner":   ownerToken,
			"admin":   tokenFor(t, adminUserID, constants.RoleAdmin),
		} {
			w = doJSON(router, http.MethodGet, "/api/v1/bookings/1", token, nil)
			assert.Equal(t, http.StatusOK, w.Code, name)
		}

		w = doJSON(router, http.MethodGet, "/api/v1/bookings/1", strangerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(router, http.MethodGet, "/api/v1/bookings/999", studentToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list is scoped per actor", func(t *testing.T) {
		router, _ := newBookingTestRouter(t)
		for i := 0; i < 2; i++ {
			w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
			require.Equal(t, http.StatusCreated, w.Code)
		}

		var resp struct {
			Data       []json.RawMessage `json:"data"`
			Pagination struct {
				Total int `json:"total"`
			} `json:"pagination"`
		}

		w := doJSON(router, http.MethodGet, "/api/v1/bookings", studentToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Pagination.Total)

		w = doJSON(router, http.MethodGet, "/api/v1/bookings", strangerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp.Data = nil
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Pagination.Total)
	})

	t.Run("confirming past the last room is 409", func(t *testing.T) {
		router, store := newBookingTestRouter(t)
		store.mu.Lock()
		store.roomType.AvailableCount = 1
		store.roomType.TotalCount = 1
		store.mu.Unlock()

		for i := 0; i < 2; i++ {
			w := doJSON(router, http.MethodPost, "/api/v1/bookings", studentToken, createBookingRequest())
			require.Equal(t, http.StatusCreated, w.Code, fmt.Sprintf("booking %d", i+1))
		}

		w := doJSON(router, http.MethodPut, "/api/v1/bookings/1", ownerToken,
			map[string]string{"status": "confirmed"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, http.MethodPut, "/api/v1/bookings/2", ownerToken,
			map[string]string{"status": "confirmed"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

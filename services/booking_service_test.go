package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"uninest/constants"
	"uninest/dto"
	"uninest/errors"
	"uninest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingStore is an in-memory BookingStore with the same conditional
// inventory contract as the SQL implementation.
type fakeBookingStore struct {
	mu        sync.Mutex
	bookings  map[uint]*models.Booking
	roomTypes map[uint]*models.RoomType
	hostels   map[uint]*models.Hostel
	students  map[uint]*models.User
	nextID    uint
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings:  map[uint]*models.Booking{},
		roomTypes: map[uint]*models.RoomType{},
		hostels:   map[uint]*models.Hostel{},
		students:  map[uint]*models.User{},
		nextID:    1,
	}
}

func (f *fakeBookingStore) addHostel(h models.Hostel) {
	f.hostels[h.ID] = &h
}

func (f *fakeBookingStore) addRoomType(rt models.RoomType) {
	f.roomTypes[rt.ID] = &rt
}

func (f *fakeBookingStore) addStudent(u models.User) {
	f.students[u.ID] = &u
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = f.nextID
	f.nextID++
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(id)
}

// load attaches the relations the way the SQL store preloads them.
// Callers must hold the mutex.
func (f *fakeBookingStore) load(id uint) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	clone := *booking
	if hostel, ok := f.hostels[booking.HostelID]; ok {
		h := *hostel
		clone.Hostel = &h
	}
	if roomType, ok := f.roomTypes[booking.RoomTypeID]; ok {
		rt := *roomType
		clone.RoomType = &rt
	}
	if student, ok := f.students[booking.StudentID]; ok {
		s := *student
		clone.Student = &s
	}
	return &clone, nil
}

func (f *fakeBookingStore) List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for id := range f.bookings {
		b, _ := f.load(id)
		if filter.StudentID != 0 && b.StudentID != filter.StudentID {
			continue
		}
		if filter.HostelOwnerID != 0 {
			if b.Hostel == nil || b.Hostel.OwnerID != filter.HostelOwnerID {
				continue
			}
		}
		if filter.HostelID != 0 && b.HostelID != filter.HostelID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(b, filter.Search) {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

// matchesSearch mirrors the SQL store's ILIKE match on student name or
// email and hostel name or address.
func matchesSearch(b *models.Booking, term string) bool {
	term = strings.ToLower(term)
	fields := []string{}
	if b.Student != nil {
		fields = append(fields, b.Student.FirstName, b.Student.LastName, b.Student.Email)
	}
	if b.Hostel != nil {
		fields = append(fields, b.Hostel.Name, b.Hostel.Address)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (f *fakeBookingStore) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	roomType, ok := f.roomTypes[id]
	if !ok {
		return nil, errors.ErrRoomTypeNotFound
	}
	clone := *roomType
	return &clone, nil
}

func (f *fakeBookingStore) Transition(ctx context.Context, bookingID uint, from, to int) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	if booking.Status != from {
		return nil, errors.ErrInvalidTransition
	}

	roomType := f.roomTypes[booking.RoomTypeID]
	if to == models.BookingStatusConfirmed {
		if roomType.AvailableCount <= 0 {
			return nil, errors.ErrNoRoomsAvailable
		}
		roomType.AvailableCount--
	}
	if from == models.BookingStatusConfirmed && to == models.BookingStatusCancelled {
		if roomType.AvailableCount >= roomType.TotalCount {
			return nil, errors.ErrInventoryInconsistent
		}
		roomType.AvailableCount++
	}

	booking.Status = to
	return f.load(bookingID)
}

func (f *fakeBookingStore) ListConfirmedEndedBefore(ctx context.Context, deadline time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for id, b := range f.bookings {
		if b.Status == models.BookingStatusConfirmed && b.EndDate.Before(deadline) {
			loaded, _ := f.load(id)
			out = append(out, *loaded)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) availableCount(roomTypeID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roomTypes[roomTypeID].AvailableCount
}

var _ BookingStore = (*fakeBookingStore)(nil)

// fakeBookingListCache is an in-memory BookingListCache.
type fakeBookingListCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeBookingListCache() *fakeBookingListCache {
	return &fakeBookingListCache{entries: map[string][]byte{}}
}

func (f *fakeBookingListCache) GetList(ctx context.Context, key string, target interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}

func (f *fakeBookingListCache) SetList(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = raw
}

func (f *fakeBookingListCache) InvalidateLists(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = map[string][]byte{}
}

func (f *fakeBookingListCache) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

var _ BookingListCache = (*fakeBookingListCache)(nil)

const (
	testStudentID = 10
	testOwnerID   = 20
	testAdminID   = 30
	testHostelID  = 1
	testRoomID    = 1
)

var (
	student  = Actor{ID: testStudentID, Role: constants.RoleStudent}
	owner    = Actor{ID: testOwnerID, Role: constants.RoleHostelOwner}
	admin    = Actor{ID: testAdminID, Role: constants.RoleAdmin}
	stranger = Actor{ID: 99, Role: constants.RoleStudent}
)

func newTestService(t *testing.T, available int) (*BookingService, *fakeBookingStore) {
	t.Helper()
	store := newFakeBookingStore()
	store.addHostel(models.Hostel{ID: testHostelID, OwnerID: testOwnerID, Name: "Sunrise Hostel", IsActive: true})
	store.addRoomType(models.RoomType{
		ID: testRoomID, HostelID: testHostelID, Name: "Double",
		PricePerMonth: 200, AvailableCount: available, TotalCount: 5,
	})
	store.addStudent(models.User{ID: testStudentID, Role: constants.RoleStudent, Email: "student@example.com"})

	svc := NewBookingService(BookingServiceOptions{Store: store})
	return svc, store
}

func createPending(t *testing.T, svc *BookingService) *models.Booking {
	t.Helper()
	booking, err := svc.Create(context.Background(), student, dto.CreateBookingRequest{
		HostelID:   testHostelID,
		RoomTypeID: testRoomID,
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	return booking
}

func TestCalculateTotalPrice(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		days  int
		price float64
		want  float64
	}{
		{"exactly one block", 30, 200, 200},
		{"one day over rounds up", 31, 200, 400},
		{"two blocks plus a day", 61, 200, 600},
		{"single day", 1, 200, 200},
		{"three full blocks", 90, 150, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := start.AddDate(0, 0, tt.days)
			assert.Equal(t, tt.want, CalculateTotalPrice(tt.price, start, end))
		})
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("student creates pending booking with computed price", func(t *testing.T) {
		svc, store := newTestService(t, 3)
		booking := createPending(t, svc)

		// 91 days -> 4 blocks of 30.
		assert.Equal(t, float64(800), booking.TotalPrice)
		// Pending bookings never hold inventory.
		assert.Equal(t, 3, store.availableCount(testRoomID))
	})

	t.Run("non-students cannot create", func(t *testing.T) {
		svc, _ := newTestService(t, 3)
		for _, actor := range []Actor{owner, admin} {
			_, err := svc.Create(context.Background(), actor, dto.CreateBookingRequest{
				HostelID: testHostelID, RoomTypeID: testRoomID,
				StartDate: time.Now(), EndDate: time.Now().AddDate(0, 1, 0),
			})
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeForbidden, errors.GetAppError(err).Code)
		}
	})

	t.Run("end date must be after start date", func(t *testing.T) {
		svc, _ := newTestService(t, 3)
		day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Create(context.Background(), student, dto.CreateBookingRequest{
			HostelID: testHostelID, RoomTypeID: testRoomID, StartDate: day, EndDate: day,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidDates, errors.GetAppError(err).Code)
	})

	t.Run("room type must belong to the hostel", func(t *testing.T) {
		svc, store := newTestService(t, 3)
		store.addRoomType(models.RoomType{ID: 7, HostelID: 42, PricePerMonth: 100, AvailableCount: 1, TotalCount: 1})
		_, err := svc.Create(context.Background(), student, dto.CreateBookingRequest{
			HostelID: testHostelID, RoomTypeID: 7,
			StartDate: time.Now(), EndDate: time.Now().AddDate(0, 1, 0),
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeValidation, errors.GetAppError(err).Code)
	})

	t.Run("sold out room rejects new bookings", func(t *testing.T) {
		svc, _ := newTestService(t, 0)
		_, err := svc.Create(context.Background(), student, dto.CreateBookingRequest{
			HostelID: testHostelID, RoomTypeID: testRoomID,
			StartDate: time.Now(), EndDate: time.Now().AddDate(0, 1, 0),
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeNoRoomsAvailable, errors.GetAppError(err).Code)
	})
}

func TestUpdateStatusPermissionMatrix(t *testing.T) {
	confirmed := models.BookingStatusLabel(models.BookingStatusConfirmed)
	cancelled := models.BookingStatusLabel(models.BookingStatusCancelled)
	completed := models.BookingStatusLabel(models.BookingStatusCompleted)

	tests := []struct {
		name      string
		fromState int
		target    string
		actor     Actor
		wantCode  errors.ErrorCode // empty means success
	}{
		{"owner confirms pending", models.BookingStatusPending, confirmed, owner, ""},
		{"admin confirms pending", models.BookingStatusPending, confirmed, admin, ""},
		{"student cannot confirm own booking", models.BookingStatusPending, confirmed, student, errors.ErrCodeForbidden},

		{"owner cancels pending", models.BookingStatusPending, cancelled, owner, ""},
		{"admin cancels pending", models.BookingStatusPending, cancelled, admin, ""},
		{"student cannot cancel pending", models.BookingStatusPending, cancelled, student, errors.ErrCodeForbidden},

		{"owner cancels confirmed", models.BookingStatusConfirmed, cancelled, owner, ""},
		{"admin cancels confirmed", models.BookingStatusConfirmed, cancelled, admin, ""},
		{"student cannot cancel confirmed", models.BookingStatusConfirmed, cancelled, student, errors.ErrCodeForbidden},

		{"student completes confirmed", models.BookingStatusConfirmed, completed, student, ""},
		{"admin completes confirmed", models.BookingStatusConfirmed, completed, admin, ""},
		{"owner cannot complete", models.BookingStatusConfirmed, completed, owner, errors.ErrCodeForbidden},

		{"pending cannot be completed", models.BookingStatusPending, completed, student, errors.ErrCodeInvalidTransition},
		{"completed is terminal for cancel", models.BookingStatusCompleted, cancelled, admin, errors.ErrCodeInvalidTransition},
		{"completed is terminal for confirm", models.BookingStatusCompleted, confirmed, admin, errors.ErrCodeInvalidTransition},
		{"cancelled is terminal for confirm", models.BookingStatusCancelled, confirmed, admin, errors.ErrCodeInvalidTransition},
		{"cancelled is terminal for complete", models.BookingStatusCancelled, completed, admin, errors.ErrCodeInvalidTransition},

		{"outsider is refused even for legal edge", models.BookingStatusPending, confirmed, stranger, errors.ErrCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t, 3)
			booking := createPending(t, svc)

			// Drive the booking into the starting state directly; inventory
			// bookkeeping mirrors a real confirm.
			if tt.fromState != models.BookingStatusPending {
				_, err := store.Transition(context.Background(), booking.ID, models.BookingStatusPending, models.BookingStatusConfirmed)
				require.NoError(t, err)
				if tt.fromState != models.BookingStatusConfirmed {
					_, err = store.Transition(context.Background(), booking.ID, models.BookingStatusConfirmed, tt.fromState)
					require.NoError(t, err)
				}
			}

			updated, err := svc.UpdateStatus(context.Background(), tt.actor, booking.ID, tt.target)
			if tt.wantCode == "" {
				require.NoError(t, err)
				want, _ := models.ParseBookingStatus(tt.target)
				assert.Equal(t, want, updated.Status)
				return
			}

			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)

			// A rejected edge must not move the stored status.
			stored, getErr := store.GetByID(context.Background(), booking.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.fromState, stored.Status)
		})
	}
}

func TestInventoryConservation(t *testing.T) {
	t.Run("confirm takes a unit, cancel returns it", func(t *testing.T) {
		svc, store := newTestService(t, 2)
		booking := createPending(t, svc)

		_, err := svc.UpdateStatus(context.Background(), owner, booking.ID, "confirmed")
		require.NoError(t, err)
		assert.Equal(t, 1, store.availableCount(testRoomID))

		_, err = svc.UpdateStatus(context.Background(), owner, booking.ID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, 2, store.availableCount(testRoomID))
	})

	t.Run("cancelling a pending booking leaves inventory alone", func(t *testing.T) {
		svc, store := newTestService(t, 2)
		booking := createPending(t, svc)

		_, err := svc.UpdateStatus(context.Background(), owner, booking.ID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, 2, store.availableCount(testRoomID))
	})

	t.Run("completion does not release the unit", func(t *testing.T) {
		svc, store := newTestService(t, 2)
		booking := createPending(t, svc)

		_, err := svc.UpdateStatus(context.Background(), owner, booking.ID, "confirmed")
		require.NoError(t, err)
		_, err = svc.UpdateStatus(context.Background(), student, booking.ID, "completed")
		require.NoError(t, err)
		assert.Equal(t, 1, store.availableCount(testRoomID))
	})

	t.Run("confirming with no free units fails cleanly", func(t *testing.T) {
		svc, store := newTestService(t, 1)
		first := createPending(t, svc)
		second := createPending(t, svc)

		_, err := svc.UpdateStatus(context.Background(), owner, first.ID, "confirmed")
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), owner, second.ID, "confirmed")
		require.ErrorIs(t, err, errors.ErrNoRoomsAvailable)

		stored, _ := store.GetByID(context.Background(), second.ID)
		assert.Equal(t, models.BookingStatusPending, stored.Status)
		assert.Equal(t, 0, store.availableCount(testRoomID))
	})
}

func TestConcurrentConfirmationsNeverOversell(t *testing.T) {
	const pendingBookings = 20
	const freeUnits = 3

	svc, store := newTestService(t, freeUnits)

	ids := make([]uint, 0, pendingBookings)
	for i := 0; i < pendingBookings; i++ {
		ids = append(ids, createPending(t, svc).ID)
	}

	var wg sync.WaitGroup
	results := make(chan error, pendingBookings)
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.UpdateStatus(context.Background(), owner, id, "confirmed")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, errors.ErrNoRoomsAvailable)
		}
	}

	assert.Equal(t, freeUnits, succeeded)
	assert.Equal(t, 0, store.availableCount(testRoomID))
}

func TestVisibilityScoping(t *testing.T) {
	svc, _ := newTestService(t, 3)
	booking := createPending(t, svc)

	t.Run("parties can read", func(t *testing.T) {
		for _, actor := range []Actor{student, owner, admin} {
			got, err := svc.Get(context.Background(), actor, booking.ID)
			require.NoError(t, err)
			assert.Equal(t, booking.ID, got.ID)
		}
	})

	t.Run("outsiders get a refusal, not a not-found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), stranger, booking.ID)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeForbidden, errors.GetAppError(err).Code)
	})

	t.Run("lists are role scoped", func(t *testing.T) {
		own, _, err := svc.List(context.Background(), student, dto.BookingListQuery{})
		require.NoError(t, err)
		assert.Len(t, own, 1)

		other, _, err := svc.List(context.Background(), stranger, dto.BookingListQuery{})
		require.NoError(t, err)
		assert.Empty(t, other)

		all, _, err := svc.List(context.Background(), admin, dto.BookingListQuery{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("status filter rejects unknown labels", func(t *testing.T) {
		_, _, err := svc.List(context.Background(), admin, dto.BookingListQuery{Status: "archived"})
		require.Error(t, err)
	})
}

func TestAdminBookingSearch(t *testing.T) {
	svc, store := newTestService(t, 5)
	store.addStudent(models.User{
		ID: 99, Role: constants.RoleStudent,
		FirstName: "Minh", LastName: "Tran", Email: "minh.tran@example.com",
	})

	createPending(t, svc)
	_, err := svc.Create(context.Background(), stranger, dto.CreateBookingRequest{
		HostelID: testHostelID, RoomTypeID: testRoomID,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("admin finds by student email", func(t *testing.T) {
		items, total, err := svc.List(context.Background(), admin, dto.BookingListQuery{Search: "student@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, uint(testStudentID), items[0].StudentID)
	})

	t.Run("admin finds by student name", func(t *testing.T) {
		items, _, err := svc.List(context.Background(), admin, dto.BookingListQuery{Search: "tran"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(99), items[0].StudentID)
	})

	t.Run("admin finds by hostel name", func(t *testing.T) {
		items, _, err := svc.List(context.Background(), admin, dto.BookingListQuery{Search: "Sunrise"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("no match means empty page", func(t *testing.T) {
		items, _, err := svc.List(context.Background(), admin, dto.BookingListQuery{Search: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("search is ignored for students", func(t *testing.T) {
		items, _, err := svc.List(context.Background(), student, dto.BookingListQuery{Search: "tran"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(testStudentID), items[0].StudentID)
	})
}

func TestBookingListCaching(t *testing.T) {
	store := newFakeBookingStore()
	store.addHostel(models.Hostel{ID: testHostelID, OwnerID: testOwnerID, Name: "Sunrise Hostel", IsActive: true})
	store.addRoomType(models.RoomType{
		ID: testRoomID, HostelID: testHostelID, Name: "Double",
		PricePerMonth: 200, AvailableCount: 5, TotalCount: 5,
	})
	store.addStudent(models.User{ID: testStudentID, Role: constants.RoleStudent, Email: "student@example.com"})

	cache := newFakeBookingListCache()
	svc := NewBookingService(BookingServiceOptions{Store: store, Cache: cache})

	booking := createPending(t, svc)
	assert.Equal(t, 0, cache.size())

	// First read fills the cache.
	items, _, err := svc.List(context.Background(), student, dto.BookingListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, cache.size())

	// Slip a booking past the service; a cached page must not see it.
	store.mu.Lock()
	store.bookings[store.nextID] = &models.Booking{
		ID: store.nextID, StudentID: testStudentID, HostelID: testHostelID,
		RoomTypeID: testRoomID, Status: models.BookingStatusPending,
	}
	store.nextID++
	store.mu.Unlock()

	items, _, err = svc.List(context.Background(), student, dto.BookingListQuery{})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Any transition drops every cached page.
	_, err = svc.UpdateStatus(context.Background(), owner, booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.size())

	items, _, err = svc.List(context.Background(), student, dto.BookingListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Search results are never cached.
	before := cache.size()
	_, _, err = svc.List(context.Background(), admin, dto.BookingListQuery{Search: "Sunrise"})
	require.NoError(t, err)
	assert.Equal(t, before, cache.size())
}

func TestCompleteExpired(t *testing.T) {
	svc, store := newTestService(t, 5)

	past := createPending(t, svc)
	future := createPending(t, svc)
	pendingOnly := createPending(t, svc)

	_, err := svc.UpdateStatus(context.Background(), owner, past.ID, "confirmed")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), owner, future.ID, "confirmed")
	require.NoError(t, err)

	// The first stay ended last year, the second runs into next year.
	store.mu.Lock()
	store.bookings[past.ID].EndDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	store.bookings[future.ID].EndDate = time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	store.mu.Unlock()

	count, err := svc.CompleteExpired(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, _ := store.GetByID(context.Background(), past.ID)
	assert.Equal(t, models.BookingStatusCompleted, got.Status)
	got, _ = store.GetByID(context.Background(), future.ID)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	got, _ = store.GetByID(context.Background(), pendingOnly.ID)
	assert.Equal(t, models.BookingStatusPending, got.Status)
}

func TestBookingScenario(t *testing.T) {
	// Full happy path: request, confirm, complete, then a review-eligible
	// stay; inventory returns only on the cancel branch.
	svc, store := newTestService(t, 1)

	booking := createPending(t, svc)
	assert.Equal(t, 1, store.availableCount(testRoomID))

	confirmed, err := svc.UpdateStatus(context.Background(), owner, booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	assert.Equal(t, 0, store.availableCount(testRoomID))

	// Another student cannot grab the last unit now.
	lateBooking, err := svc.Create(context.Background(), student, dto.CreateBookingRequest{
		HostelID: testHostelID, RoomTypeID: testRoomID,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Nil(t, lateBooking)

	completed, err := svc.UpdateStatus(context.Background(), student, booking.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	assert.Equal(t, 0, store.availableCount(testRoomID))
}

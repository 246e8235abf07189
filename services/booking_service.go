package services

import (
	"context"
	"math"
	"time"

	"uninest/constants"
	"uninest/dto"
	"uninest/errors"
	"uninest/models"
	"uninest/services/logger"
)

// Actor is the authenticated principal a request acts as.
type Actor struct {
	ID   uint
	Role int
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// SystemActor is used by scheduled jobs; it carries admin privileges.
var SystemActor = Actor{ID: 0, Role: constants.RoleAdmin}

// BookingNotifier receives booking lifecycle events; delivery is best
// effort and never fails the transition.
type BookingNotifier interface {
	BookingStatusChanged(booking *models.Booking, previousStatus int)
}

// BookingService enforces the booking state machine and the permission
// matrix, and keeps room inventory consistent with confirmed occupancy.
type BookingService struct {
	store    BookingStore
	notifier BookingNotifier
	cache    BookingListCache
	logger   logger.Logger
}

type BookingServiceOptions struct {
	Store    BookingStore
	Notifier BookingNotifier
	Cache    BookingListCache
	Logger   logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &BookingService{
		store:    opts.Store,
		notifier: opts.Notifier,
		cache:    opts.Cache,
		logger:   l,
	}
}

// CalculateTotalPrice bills the stay as 30-day blocks; partial blocks
// round up. This mirrors the product pricing rule exactly.
func CalculateTotalPrice(pricePerMonth float64, start, end time.Time) float64 {
	months := math.Ceil(end.Sub(start).Hours() / (24 * constants.DaysPerBillingMonth))
	return pricePerMonth * months
}

// Create opens a new booking in pending state. A pending booking does not
// reserve a unit; availability is only checked as a courtesy here and
// consumed at confirmation.
func (s *BookingService) Create(ctx context.Context, actor Actor, req dto.CreateBookingRequest) (*models.Booking, error) {
	if actor.Role != constants.RoleStudent {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Only students can create bookings", nil)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidDates, "End date must be after start date", nil)
	}

	roomType, err := s.store.GetRoomType(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if roomType.HostelID != req.HostelID {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Room type does not belong to this hostel", errors.ErrRoomTypeMismatch)
	}
	if roomType.AvailableCount <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeNoRoomsAvailable, "No rooms available", errors.ErrNoRoomsAvailable)
	}

	booking := &models.Booking{
		StudentID:  actor.ID,
		HostelID:   req.HostelID,
		RoomTypeID: req.RoomTypeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: CalculateTotalPrice(roomType.PricePerMonth, req.StartDate, req.EndDate),
		Status:     models.BookingStatusPending,
		Message:    req.Message,
	}
	if err := s.store.Create(ctx, booking); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateLists(ctx)
	}

	s.logger.Info("booking %d created by student %d for room type %d", booking.ID, actor.ID, booking.RoomTypeID)
	return s.store.GetByID(ctx, booking.ID)
}

// Get returns a booking if the actor is a party to it: the student who made
// it, the owner of its hostel, or an admin. Everyone else is refused, even
// when the booking exists.
func (s *BookingService) Get(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.isParty(actor, booking) {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Access denied", errors.ErrForbidden)
	}
	return booking, nil
}

// bookingPage is the cached shape of one list result.
type bookingPage struct {
	Items []models.Booking `json:"items"`
	Total int64            `json:"total"`
}

// List returns the actor-scoped booking list: students see their own,
// owners see bookings against their hostels, admins see everything. The
// free-text search is an admin moderation tool and is ignored for other
// roles. Pages are cached per actor and dropped on every write.
func (s *BookingService) List(ctx context.Context, actor Actor, query dto.BookingListQuery) ([]models.Booking, int64, error) {
	filter := BookingFilter{
		Page:  query.Page,
		Limit: query.Limit,
	}
	switch actor.Role {
	case constants.RoleStudent:
		filter.StudentID = actor.ID
	case constants.RoleHostelOwner:
		filter.HostelOwnerID = actor.ID
	case constants.RoleAdmin:
		filter.Search = query.Search
	default:
		return nil, 0, errors.NewAppError(errors.ErrCodeInvalidRole, "Unknown role", nil)
	}

	if query.Status != "" {
		status, err := models.ParseBookingStatus(query.Status)
		if err != nil {
			return nil, 0, errors.NewAppError(errors.ErrCodeValidation, "Unknown status filter", err)
		}
		filter.Status = &status
	}

	cacheable := s.cache != nil && filter.Search == ""
	key := bookingListKey(actor, query.Status, query.Page, query.Limit)
	if cacheable {
		var page bookingPage
		if s.cache.GetList(ctx, key, &page) {
			return page.Items, page.Total, nil
		}
	}

	items, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		s.cache.SetList(ctx, key, bookingPage{Items: items, Total: total})
	}
	return items, total, nil
}

// UpdateStatus runs one edge of the state machine on behalf of the actor.
// The permission matrix:
//
//	pending   -> confirmed   hostel owner or admin
//	pending   -> cancelled   hostel owner or admin
//	confirmed -> cancelled   hostel owner or admin
//	confirmed -> completed   booking's student or admin
//
// Anything else is rejected with no state written.
func (s *BookingService) UpdateStatus(ctx context.Context, actor Actor, id uint, statusLabel string) (*models.Booking, error) {
	target, err := models.ParseBookingStatus(statusLabel)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Unknown booking status", err)
	}
	if target == models.BookingStatusPending {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Cannot move a booking back to pending", nil)
	}

	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isParty(actor, booking) {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Access denied", errors.ErrForbidden)
	}
	if err := s.authorizeTransition(actor, booking, target); err != nil {
		return nil, err
	}

	// Run the edge against a copy first; an illegal edge must leave the
	// stored status untouched.
	next := *booking
	state := models.GetBookingState(booking.Status)
	switch target {
	case models.BookingStatusConfirmed:
		err = state.Confirm(&next)
	case models.BookingStatusCancelled:
		err = state.Cancel(&next)
	case models.BookingStatusCompleted:
		err = state.Complete(&next)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidTransition, err.Error(), errors.ErrInvalidTransition)
	}

	updated, err := s.store.Transition(ctx, booking.ID, booking.Status, next.Status)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateLists(ctx)
	}

	s.logger.Info("booking %d: %s -> %s by actor %d", booking.ID,
		models.BookingStatusLabel(booking.Status), models.BookingStatusLabel(updated.Status), actor.ID)

	if s.notifier != nil {
		s.notifier.BookingStatusChanged(updated, booking.Status)
	}
	return updated, nil
}

// CompleteExpired closes out confirmed bookings whose stay has ended. Used
// by the nightly job with the system actor.
func (s *BookingService) CompleteExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.store.ListConfirmedEndedBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, booking := range expired {
		if _, err := s.UpdateStatus(ctx, SystemActor, booking.ID, models.BookingStatusLabel(models.BookingStatusCompleted)); err != nil {
			s.logger.Error("auto-complete of booking %d failed: %v", booking.ID, err)
			continue
		}
		completed++
	}
	return completed, nil
}

func (s *BookingService) isParty(actor Actor, booking *models.Booking) bool {
	if actor.IsAdmin() {
		return true
	}
	if booking.StudentID == actor.ID && actor.Role == constants.RoleStudent {
		return true
	}
	return booking.Hostel != nil && booking.Hostel.OwnerID == actor.ID && actor.Role == constants.RoleHostelOwner
}

func (s *BookingService) authorizeTransition(actor Actor, booking *models.Booking, target int) error {
	if actor.IsAdmin() {
		return nil
	}
	switch target {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled:
		if booking.Hostel != nil && booking.Hostel.OwnerID == actor.ID && actor.Role == constants.RoleHostelOwner {
			return nil
		}
	case models.BookingStatusCompleted:
		if booking.StudentID == actor.ID && actor.Role == constants.RoleStudent {
			return nil
		}
	}
	return errors.NewAppError(errors.ErrCodeForbidden, "Not allowed to perform this transition", errors.ErrForbidden)
}

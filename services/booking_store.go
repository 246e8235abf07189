package services

import (
	"context"
	stderrors "errors"
	"time"

	"uninest/errors"
	"uninest/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter scopes a booking list query. Search matches the student's
// name or email and the hostel's name or address, case insensitively.
type BookingFilter struct {
	StudentID     uint
	HostelOwnerID uint
	HostelID      uint
	Status        *int
	Search        string
	Page          int
	Limit         int
}

// BookingStore is the persistence contract of the booking lifecycle. The
// Transition primitive applies the status write and the paired inventory
// adjustment in one transaction; the inventory change is conditional so the
// last room can never be sold twice.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error)
	GetRoomType(ctx context.Context, id uint) (*models.RoomType, error)
	Transition(ctx context.Context, bookingID uint, from, to int) (*models.Booking, error)
	ListConfirmedEndedBefore(ctx context.Context, deadline time.Time) ([]models.Booking, error)
}

type GormBookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

func (s *GormBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *GormBookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Student").
		Preload("Hostel").
		Preload("Hostel.Owner").
		Preload("RoomType").
		First(&booking, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormBookingStore) List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Booking{})

	if filter.StudentID != 0 {
		tx = tx.Where("bookings.student_id = ?", filter.StudentID)
	}
	if filter.HostelOwnerID != 0 {
		tx = tx.Where("bookings.hostel_id IN (?)",
			s.db.Model(&models.Hostel{}).Select("id").Where("owner_id = ?", filter.HostelOwnerID))
	}
	if filter.HostelID != 0 {
		tx = tx.Where("bookings.hostel_id = ?", filter.HostelID)
	}
	if filter.Status != nil {
		tx = tx.Where("bookings.status = ?", *filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.
			Joins("JOIN users AS students ON students.id = bookings.student_id").
			Joins("JOIN hostels AS booked_hostels ON booked_hostels.id = bookings.hostel_id").
			Where(`students.first_name ILIKE ? OR students.last_name ILIKE ? OR students.email ILIKE ?
				OR booked_hostels.name ILIKE ? OR booked_hostels.address ILIKE ?`,
				like, like, like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	var bookings []models.Booking
	err := tx.
		Preload("Student").
		Preload("Hostel").
		Preload("Hostel.Owner").
		Preload("RoomType").
		Order("bookings.created_at DESC").
		Offset(filter.Page * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (s *GormBookingStore) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	var roomType models.RoomType
	err := s.db.WithContext(ctx).First(&roomType, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &roomType, nil
}

// Transition moves a booking from one status to another together with the
// inventory side effect of the edge. The booking row is locked for the
// duration of the transaction; the decrement only fires while a unit is
// still free, so concurrent confirmations of the last room serialize into
// one success and ErrNoRoomsAvailable for the rest.
func (s *GormBookingStore) Transition(ctx context.Context, bookingID uint, from, to int) (*models.Booking, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrBookingNotFound
			}
			return err
		}

		if booking.Status != from {
			return errors.ErrInvalidTransition
		}

		if to == models.BookingStatusConfirmed {
			res := tx.Model(&models.RoomType{}).
				Where("id = ? AND available_count > 0", booking.RoomTypeID).
				UpdateColumn("available_count", gorm.Expr("available_count - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.ErrNoRoomsAvailable
			}
		}

		// A cancelled pending booking never held a unit; only the
		// confirmed edge gives one back.
		if from == models.BookingStatusConfirmed && to == models.BookingStatusCancelled {
			res := tx.Model(&models.RoomType{}).
				Where("id = ? AND available_count < total_count", booking.RoomTypeID).
				UpdateColumn("available_count", gorm.Expr("available_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.ErrInventoryInconsistent
			}
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Update("status", to).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, bookingID)
}

func (s *GormBookingStore) ListConfirmedEndedBefore(ctx context.Context, deadline time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Hostel").
		Where("status = ? AND end_date < ?", models.BookingStatusConfirmed, deadline).
		Find(&bookings).Error
	return bookings, err
}

var _ BookingStore = (*GormBookingStore)(nil)

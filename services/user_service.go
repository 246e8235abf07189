package services

import (
	stderrors "errors"

	"uninest/constants"
	"uninest/dto"
	"uninest/errors"
	"uninest/models"
	"uninest/services/logger"

	"gorm.io/gorm"
)

// UserService handles profiles and the admin moderation surface.
type UserService struct {
	db  *gorm.DB
	log logger.Logger
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &UserService{db: opts.DB, log: l}
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of the request.
func (s *UserService) UpdateProfile(id uint, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUserFilter scopes the admin user list.
type AdminUserFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// ListUsers returns the moderation view with activity counts.
func (s *UserService) ListUsers(filter AdminUserFilter) ([]dto.AdminUserResponse, int64, error) {
	tx := s.db.Model(&models.User{})

	if filter.Role != "" && filter.Role != "all" {
		role, err := models.ParseRole(filter.Role)
		if err != nil {
			return nil, 0, errors.NewAppError(errors.ErrCodeInvalidRole, "Unknown role filter", err)
		}
		tx = tx.Where("role = ?", role)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var users []models.User
	if err := tx.Order("created_at DESC").Offset(filter.Page * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		var bookingCount, reviewCount, hostelCount int64
		s.db.Model(&models.Booking{}).Where("student_id = ?", user.ID).Count(&bookingCount)
		s.db.Model(&models.Review{}).Where("student_id = ?", user.ID).Count(&reviewCount)
		s.db.Model(&models.Hostel{}).Where("owner_id = ?", user.ID).Count(&hostelCount)

		out = append(out, dto.AdminUserResponse{
			UserResponse: ToUserResponse(&user),
			BookingCount: int(bookingCount),
			ReviewCount:  int(reviewCount),
			HostelCount:  int(hostelCount),
		})
	}
	return out, total, nil
}

// SetVerified toggles the moderation flag that gates an owner's listings.
func (s *UserService) SetVerified(id uint, verified bool) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("is_verified", verified).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Stats aggregates the admin dashboard counters.
func (s *UserService) Stats() (dto.AdminStatsResponse, error) {
	var stats dto.AdminStatsResponse

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalStudents, s.db.Model(&models.User{}).Where("role = ?", constants.RoleStudent)},
		{&stats.TotalOwners, s.db.Model(&models.User{}).Where("role = ?", constants.RoleHostelOwner)},
		{&stats.TotalHostels, s.db.Model(&models.Hostel{})},
		{&stats.ActiveHostels, s.db.Model(&models.Hostel{}).Where("is_active = ?", true)},
		{&stats.TotalBookings, s.db.Model(&models.Booking{})},
		{&stats.PendingBookings, s.db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending)},
		{&stats.ConfirmedBookings, s.db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusConfirmed)},
		{&stats.TotalReviews, s.db.Model(&models.Review{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return dto.AdminStatsResponse{}, err
		}
	}
	return stats, nil
}

// ToUserResponse converts a user to its public shape.
func ToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Role:       models.RoleLabel(user.Role),
		IsVerified: user.IsVerified,
		Avatar:     user.Avatar,
		CreatedAt:  user.CreatedAt,
	}
}

package services

import (
	stderrors "errors"

	"uninest/dto"
	"uninest/errors"
	"uninest/models"
	"uninest/services/logger"

	"gorm.io/gorm"
)

// ReviewFilter scopes a review list query.
type ReviewFilter struct {
	HostelID  uint
	StudentID uint
	Page      int
	Limit     int
}

// ReviewStore is the persistence contract behind reviews.
type ReviewStore interface {
	GetHostel(id uint) (*models.Hostel, error)
	CountStays(studentID, hostelID uint) (int64, error)
	CountReviews(studentID, hostelID uint) (int64, error)
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	List(filter ReviewFilter) ([]models.Review, int64, error)
}

type GormReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *GormReviewStore {
	return &GormReviewStore{db: db}
}

func (s *GormReviewStore) GetHostel(id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := s.db.First(&hostel, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrHostelNotFound
		}
		return nil, err
	}
	return &hostel, nil
}

// CountStays counts the student's bookings at the hostel that reached
// confirmed or completed.
func (s *GormReviewStore) CountStays(studentID, hostelID uint) (int64, error) {
	var stays int64
	err := s.db.Model(&models.Booking{}).
		Where("student_id = ? AND hostel_id = ? AND status IN ?",
			studentID, hostelID,
			[]int{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		Count(&stays).Error
	return stays, err
}

func (s *GormReviewStore) CountReviews(studentID, hostelID uint) (int64, error) {
	var existing int64
	err := s.db.Model(&models.Review{}).
		Where("student_id = ? AND hostel_id = ?", studentID, hostelID).
		Count(&existing).Error
	return existing, err
}

func (s *GormReviewStore) Create(review *models.Review) error {
	return s.db.Create(review).Error
}

func (s *GormReviewStore) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("Student").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *GormReviewStore) List(filter ReviewFilter) ([]models.Review, int64, error) {
	tx := s.db.Model(&models.Review{})
	if filter.HostelID != 0 {
		tx = tx.Where("hostel_id = ?", filter.HostelID)
	}
	if filter.StudentID != 0 {
		tx = tx.Where("student_id = ?", filter.StudentID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	var reviews []models.Review
	err := tx.Preload("Student").
		Order("created_at DESC").
		Offset(filter.Page * limit).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

var _ ReviewStore = (*GormReviewStore)(nil)

// ReviewService handles hostel reviews. A student may review a hostel
// once, and only after a stay there was confirmed.
type ReviewService struct {
	store ReviewStore
	log   logger.Logger
}

type ReviewServiceOptions struct {
	Store  ReviewStore
	Logger logger.Logger
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &ReviewService{store: opts.Store, log: l}
}

func (s *ReviewService) List(filter ReviewFilter) ([]dto.ReviewResponse, int64, error) {
	reviews, total, err := s.store.List(filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(&r))
	}
	return out, total, nil
}

// Create stores a student's review. The student must have at least one
// booking at the hostel that reached confirmed or completed, and must
// not have reviewed it before.
func (s *ReviewService) Create(studentID uint, req dto.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.store.GetHostel(req.HostelID); err != nil {
		return nil, err
	}

	stays, err := s.store.CountStays(studentID, req.HostelID)
	if err != nil {
		return nil, err
	}
	if stays == 0 {
		return nil, errors.NewAppError(errors.ErrCodeNoStayToReview,
			"You can only review hostels you have stayed at", nil)
	}

	existing, err := s.store.CountReviews(studentID, req.HostelID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, errors.NewAppError(errors.ErrCodeAlreadyReviewed,
			"You have already reviewed this hostel", nil)
	}

	review := &models.Review{
		StudentID: studentID,
		HostelID:  req.HostelID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.store.Create(review); err != nil {
		return nil, err
	}
	return s.store.GetByID(review.ID)
}

// ToReviewResponse converts a review to its public shape.
func ToReviewResponse(review *models.Review) dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ID:        review.ID,
		HostelID:  review.HostelID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.Student != nil {
		resp.Student = dto.ActorResponse{
			ID:        review.Student.ID,
			FirstName: review.Student.FirstName,
			LastName:  review.Student.LastName,
		}
	}
	return resp
}

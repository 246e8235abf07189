package services

import (
	"context"
	"time"

	"uninest/dto"
	"uninest/models"
	"uninest/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const universityCacheKey = "universities:all"
const universityCacheTTL = 30 * time.Minute

// UniversityService serves the seeded university directory.
type UniversityService struct {
	db  *gorm.DB
	rdb *redis.Client
	log logger.Logger
}

type UniversityServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewUniversityService(opts UniversityServiceOptions) *UniversityService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &UniversityService{db: opts.DB, rdb: opts.Redis, log: l}
}

// List returns every university with its active-listing count. The
// directory changes rarely, so the whole list is cached.
func (s *UniversityService) List() ([]dto.UniversityResponse, error) {
	if s.rdb != nil {
		var cached []dto.UniversityResponse
		if err := GetFromRedis(context.Background(), s.rdb, universityCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	var universities []models.University
	if err := s.db.Order("name ASC").Find(&universities).Error; err != nil {
		return nil, err
	}

	out := make([]dto.UniversityResponse, 0, len(universities))
	for _, u := range universities {
		var hostelCount int64
		s.db.Model(&models.Hostel{}).
			Where("university_id = ? AND is_active = ?", u.ID, true).
			Count(&hostelCount)

		out = append(out, dto.UniversityResponse{
			ID:          u.ID,
			Name:        u.Name,
			ShortCode:   u.ShortCode,
			Address:     u.Address,
			Latitude:    u.Latitude,
			Longitude:   u.Longitude,
			LogoURL:     u.LogoURL,
			HostelCount: int(hostelCount),
		})
	}

	if s.rdb != nil {
		if err := SetToRedis(context.Background(), s.rdb, universityCacheKey, out, universityCacheTTL); err != nil {
			s.log.Error("cache universities: %v", err)
		}
	}
	return out, nil
}

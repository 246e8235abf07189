package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"uninest/dto"
	"uninest/errors"
	"uninest/models"
	"uninest/services/logger"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/redis/go-redis/v9"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

const hostelCacheTTL = 5 * time.Minute

// HostelService handles listings: search, detail, owner CRUD and the
// room-type inventory underneath each hostel.
type HostelService struct {
	db  *gorm.DB
	rdb *redis.Client
	log logger.Logger
}

type HostelServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewHostelService(opts HostelServiceOptions) *HostelService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &HostelService{db: opts.DB, rdb: opts.Redis, log: l}
}

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

func prepareUniqueList(hostels []models.Hostel, field string) []string {
	uniqueValues := make(map[string]bool)
	for _, h := range hostels {
		var value string
		switch field {
		case "name":
			value = h.Name
		case "address":
			value = h.Address
		case "university":
			if h.University != nil {
				value = h.University.Name
			}
		}
		if value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}
	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

func calculateScore(query string, hostel models.Hostel, cmName, cmAddress *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	name := normalizeInput(hostel.Name)
	if strings.Contains(name, normalizedQuery) {
		score += 20
	} else if cmName.Closest(normalizedQuery) == name {
		score += 13
	} else if calculateSimilarity(normalizedQuery, name) > 0.7 {
		score += 10
	}

	address := normalizeInput(hostel.Address)
	if strings.Contains(address, normalizedQuery) {
		score += 12
	} else if cmAddress.Closest(normalizedQuery) == address {
		score += 8
	}

	if hostel.University != nil {
		uni := normalizeInput(hostel.University.Name)
		shortCode := normalizeInput(hostel.University.ShortCode)
		if strings.Contains(normalizedQuery, shortCode) && shortCode != "" {
			score += 15
		} else if calculateSimilarity(normalizedQuery, uni) > 0.6 {
			score += 9
		}
	}
	return score
}

// Search lists bookable hostels. Only active listings of verified owners
// are visible. A free-text query ranks results by fuzzy match on name,
// address and university; results for a query are not cached, plain
// filter pages are.
func (s *HostelService) Search(q dto.HostelSearchQuery) ([]dto.HostelResponse, int64, error) {
	page := q.Page
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	cacheKey := ""
	if q.Query == "" && s.rdb != nil {
		cacheKey = fmt.Sprintf("hostels:all:%d:%d:%d:%.0f:%.0f", q.UniversityID, page, limit, q.MinPrice, q.MaxPrice)
		var cached struct {
			Items []dto.HostelResponse `json:"items"`
			Total int64                `json:"total"`
		}
		if err := GetFromRedis(context.Background(), s.rdb, cacheKey, &cached); err == nil && len(cached.Items) > 0 {
			return cached.Items, cached.Total, nil
		}
	}

	tx := s.db.Model(&models.Hostel{}).
		Joins("JOIN users ON users.id = hostels.owner_id").
		Where("hostels.is_active = ? AND users.is_verified = ?", true, true).
		Preload("Owner").
		Preload("University").
		Preload("RoomTypes").
		Preload("Images").
		Preload("Reviews")

	if q.UniversityID != 0 {
		tx = tx.Where("hostels.university_id = ?", q.UniversityID)
	}
	if q.MinPrice > 0 || q.MaxPrice > 0 {
		priceSub := s.db.Model(&models.RoomType{}).Select("hostel_id")
		if q.MinPrice > 0 {
			priceSub = priceSub.Where("price_per_month >= ?", q.MinPrice)
		}
		if q.MaxPrice > 0 {
			priceSub = priceSub.Where("price_per_month <= ?", q.MaxPrice)
		}
		tx = tx.Where("hostels.id IN (?)", priceSub)
	}

	var hostels []models.Hostel
	if err := tx.Find(&hostels).Error; err != nil {
		return nil, 0, err
	}

	if q.Query != "" {
		cmName := createMatcher(prepareUniqueList(hostels, "name"))
		cmAddress := createMatcher(prepareUniqueList(hostels, "address"))

		type scored struct {
			hostel models.Hostel
			score  int
		}
		ranked := make([]scored, 0, len(hostels))
		for _, h := range hostels {
			if sc := calculateScore(q.Query, h, cmName, cmAddress); sc > 0 {
				ranked = append(ranked, scored{hostel: h, score: sc})
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

		hostels = hostels[:0]
		for _, r := range ranked {
			hostels = append(hostels, r.hostel)
		}
	} else {
		sort.SliceStable(hostels, func(i, j int) bool { return hostels[i].CreatedAt.After(hostels[j].CreatedAt) })
	}

	total := int64(len(hostels))
	start := page * limit
	if start > len(hostels) {
		start = len(hostels)
	}
	end := start + limit
	if end > len(hostels) {
		end = len(hostels)
	}

	items := make([]dto.HostelResponse, 0, end-start)
	for _, h := range hostels[start:end] {
		items = append(items, ToHostelResponse(&h))
	}

	if cacheKey != "" {
		payload := struct {
			Items []dto.HostelResponse `json:"items"`
			Total int64                `json:"total"`
		}{Items: items, Total: total}
		if err := SetToRedis(context.Background(), s.rdb, cacheKey, payload, hostelCacheTTL); err != nil {
			s.log.Error("cache hostel page: %v", err)
		}
	}
	return items, total, nil
}

// GetDetail loads one hostel with its rooms, images and reviews.
// Inactive or unverified listings stay visible to their owner and admins
// through the owner endpoints, not here.
func (s *HostelService) GetDetail(id uint) (*dto.HostelDetailResponse, error) {
	var hostel models.Hostel
	err := s.db.
		Preload("Owner").
		Preload("University").
		Preload("RoomTypes").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC").Limit(20) }).
		Preload("Reviews.Student").
		First(&hostel, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrHostelNotFound
		}
		return nil, err
	}
	if !hostel.IsActive {
		return nil, errors.ErrHostelNotFound
	}

	detail := dto.HostelDetailResponse{HostelResponse: ToHostelResponse(&hostel)}
	detail.Reviews = make([]dto.ReviewResponse, 0, len(hostel.Reviews))
	for _, r := range hostel.Reviews {
		detail.Reviews = append(detail.Reviews, ToReviewResponse(&r))
	}
	return &detail, nil
}

// Create registers a new listing for an owner.
func (s *HostelService) Create(ownerID uint, req dto.CreateHostelRequest) (*models.Hostel, error) {
	hostel := models.Hostel{
		OwnerID:      ownerID,
		UniversityID: req.UniversityID,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsActive:     true,
	}
	for _, img := range req.Images {
		hostel.Images = append(hostel.Images, models.HostelImage{
			ImageURL: img.ImageURL,
			AltText:  img.AltText,
			Order:    img.Order,
		})
	}

	if err := s.db.Create(&hostel).Error; err != nil {
		return nil, err
	}
	s.invalidateSearchCache()
	return s.getOwned(hostel.ID)
}

// Update applies the non-nil fields. Owners can only touch their own
// listings; admins can touch any.
func (s *HostelService) Update(actor Actor, id uint, req dto.UpdateHostelRequest) (*models.Hostel, error) {
	hostel, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && hostel.OwnerID != actor.ID {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Not your hostel", errors.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.UniversityID != nil {
		updates["university_id"] = *req.UniversityID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(hostel).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	s.invalidateSearchCache()
	return s.getOwned(id)
}

// Delete soft-deactivates the listing. Bookings and reviews stay intact.
func (s *HostelService) Delete(actor Actor, id uint) error {
	hostel, err := s.getOwned(id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && hostel.OwnerID != actor.ID {
		return errors.NewAppError(errors.ErrCodeForbidden, "Not your hostel", errors.ErrForbidden)
	}
	if err := s.db.Model(hostel).Update("is_active", false).Error; err != nil {
		return err
	}
	s.invalidateSearchCache()
	return nil
}

// ListByOwner returns the owner's own listings including inactive ones.
func (s *HostelService) ListByOwner(ownerID uint) ([]dto.HostelResponse, error) {
	var hostels []models.Hostel
	err := s.db.Where("owner_id = ?", ownerID).
		Preload("Owner").
		Preload("University").
		Preload("RoomTypes").
		Preload("Images").
		Preload("Reviews").
		Order("created_at DESC").
		Find(&hostels).Error
	if err != nil {
		return nil, err
	}
	out := make([]dto.HostelResponse, 0, len(hostels))
	for _, h := range hostels {
		out = append(out, ToHostelResponse(&h))
	}
	return out, nil
}

// ListAll is the admin view: every listing, active or not, paginated.
func (s *HostelService) ListAll(page, limit int) ([]dto.HostelResponse, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	var total int64
	if err := s.db.Model(&models.Hostel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var hostels []models.Hostel
	err := s.db.
		Preload("Owner").
		Preload("University").
		Preload("RoomTypes").
		Preload("Reviews").
		Order("created_at DESC").
		Offset(page * limit).Limit(limit).
		Find(&hostels).Error
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.HostelResponse, 0, len(hostels))
	for _, h := range hostels {
		out = append(out, ToHostelResponse(&h))
	}
	return out, total, nil
}

// CreateRoomType adds a room type under a hostel the actor controls.
// New room types start fully available.
func (s *HostelService) CreateRoomType(actor Actor, hostelID uint, req dto.CreateRoomTypeRequest) (*models.RoomType, error) {
	hostel, err := s.getOwned(hostelID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && hostel.OwnerID != actor.ID {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Not your hostel", errors.ErrForbidden)
	}

	room := models.RoomType{
		HostelID:       hostelID,
		Name:           req.Name,
		Description:    req.Description,
		Capacity:       req.Capacity,
		PricePerMonth:  req.PricePerMonth,
		AvailableCount: req.TotalCount,
		TotalCount:     req.TotalCount,
		Amenities:      req.Amenities,
	}
	if err := room.Validate(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, err.Error(), err)
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	s.invalidateSearchCache()
	return &room, nil
}

// UpdateRoomType applies the non-nil fields. When totalCount changes the
// available count shifts by the same delta, clamped at zero.
func (s *HostelService) UpdateRoomType(actor Actor, roomTypeID uint, req dto.UpdateRoomTypeRequest) (*models.RoomType, error) {
	var room models.RoomType
	if err := s.db.Preload("Hostel").First(&room, roomTypeID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomTypeNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && (room.Hostel == nil || room.Hostel.OwnerID != actor.ID) {
		return nil, errors.NewAppError(errors.ErrCodeForbidden, "Not your hostel", errors.ErrForbidden)
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.PricePerMonth != nil {
		room.PricePerMonth = *req.PricePerMonth
	}
	if req.TotalCount != nil {
		delta := *req.TotalCount - room.TotalCount
		room.TotalCount = *req.TotalCount
		room.AvailableCount += delta
		if room.AvailableCount < 0 {
			room.AvailableCount = 0
		}
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}

	if err := room.Validate(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, err.Error(), err)
	}
	if err := s.db.Save(&room).Error; err != nil {
		return nil, err
	}
	s.invalidateSearchCache()
	return &room, nil
}

// ListRoomTypes returns the room types of an active hostel.
func (s *HostelService) ListRoomTypes(hostelID uint) ([]dto.RoomTypeResponse, error) {
	if _, err := s.getActive(hostelID); err != nil {
		return nil, err
	}
	var rooms []models.RoomType
	if err := s.db.Where("hostel_id = ?", hostelID).Order("price_per_month ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	out := make([]dto.RoomTypeResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, ToRoomTypeResponse(&r))
	}
	return out, nil
}

func (s *HostelService) getOwned(id uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := s.db.
		Preload("Owner").
		Preload("University").
		Preload("RoomTypes").
		Preload("Images").
		First(&hostel, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrHostelNotFound
		}
		return nil, err
	}
	return &hostel, nil
}

func (s *HostelService) getActive(id uint) (*models.Hostel, error) {
	hostel, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if !hostel.IsActive {
		return nil, errors.ErrHostelNotFound
	}
	return hostel, nil
}

func (s *HostelService) invalidateSearchCache() {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedisByPattern(context.Background(), s.rdb, "hostels:all:*"); err != nil {
		s.log.Error("invalidate hostel cache: %v", err)
	}
}

// ToHostelResponse converts a hostel, including the review aggregate.
func ToHostelResponse(hostel *models.Hostel) dto.HostelResponse {
	resp := dto.HostelResponse{
		ID:                     hostel.ID,
		Name:                   hostel.Name,
		Description:            hostel.Description,
		Address:                hostel.Address,
		Latitude:               hostel.Latitude,
		Longitude:              hostel.Longitude,
		DistanceFromUniversity: hostel.DistanceFromUniversity,
		IsActive:               hostel.IsActive,
		Owner: dto.ActorResponse{
			ID:        hostel.Owner.ID,
			FirstName: hostel.Owner.FirstName,
			LastName:  hostel.Owner.LastName,
			Phone:     hostel.Owner.Phone,
		},
		CreatedAt: hostel.CreatedAt,
	}

	if hostel.University != nil {
		resp.University = &dto.UniversityResponse{
			ID:        hostel.University.ID,
			Name:      hostel.University.Name,
			ShortCode: hostel.University.ShortCode,
			Address:   hostel.University.Address,
			Latitude:  hostel.University.Latitude,
			Longitude: hostel.University.Longitude,
			LogoURL:   hostel.University.LogoURL,
		}
	}
	for _, r := range hostel.RoomTypes {
		resp.RoomTypes = append(resp.RoomTypes, ToRoomTypeResponse(&r))
	}
	for _, img := range hostel.Images {
		resp.Images = append(resp.Images, dto.HostelImageResponse{
			ID:       img.ID,
			ImageURL: img.ImageURL,
			AltText:  img.AltText,
			Order:    img.Order,
		})
	}
	if len(hostel.Reviews) > 0 {
		sum := 0
		for _, r := range hostel.Reviews {
			sum += r.Rating
		}
		resp.AverageRating = float64(sum) / float64(len(hostel.Reviews))
		resp.ReviewCount = len(hostel.Reviews)
	}
	return resp
}

// ToRoomTypeResponse converts a room type to its public shape.
func ToRoomTypeResponse(room *models.RoomType) dto.RoomTypeResponse {
	return dto.RoomTypeResponse{
		ID:             room.ID,
		HostelID:       room.HostelID,
		Name:           room.Name,
		Description:    room.Description,
		Capacity:       room.Capacity,
		PricePerMonth:  room.PricePerMonth,
		AvailableCount: room.AvailableCount,
		TotalCount:     room.TotalCount,
		Amenities:      room.Amenities,
	}
}

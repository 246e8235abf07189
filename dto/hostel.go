package dto

import "time"

// CreateHostelRequest is the payload of POST /hostels.
type CreateHostelRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	Address      string              `json:"address" binding:"required"`
	Latitude     *float64            `json:"latitude"`
	Longitude    *float64            `json:"longitude"`
	UniversityID *uint               `json:"universityId"`
	Images       []HostelImageUpload `json:"images"`
}

// UpdateHostelRequest is the payload of PUT /hostels/:id. Nil fields are
// left untouched.
type UpdateHostelRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	UniversityID *uint    `json:"universityId"`
	IsActive     *bool    `json:"isActive"`
}

type HostelImageUpload struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	AltText  string `json:"altText"`
	Order    int    `json:"order"`
}

type HostelImageResponse struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	Order    int    `json:"order"`
}

// HostelResponse is the search/list shape.
type HostelResponse struct {
	ID                     uint                  `json:"id"`
	Name                   string                `json:"name"`
	Description            string                `json:"description"`
	Address                string                `json:"address"`
	Latitude               *float64              `json:"latitude"`
	Longitude              *float64              `json:"longitude"`
	DistanceFromUniversity *float64              `json:"distanceFromUniversity,omitempty"`
	IsActive               bool                  `json:"isActive"`
	Owner                  ActorResponse         `json:"owner"`
	University             *UniversityResponse   `json:"university,omitempty"`
	RoomTypes              []RoomTypeResponse    `json:"roomTypes,omitempty"`
	Images                 []HostelImageResponse `json:"images,omitempty"`
	AverageRating          float64               `json:"averageRating"`
	ReviewCount            int                   `json:"reviewCount"`
	CreatedAt              time.Time             `json:"createdAt"`
}

// HostelDetailResponse adds recent reviews to the list shape.
type HostelDetailResponse struct {
	HostelResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// HostelSearchQuery collects the /hostels query filters.
type HostelSearchQuery struct {
	Query        string
	UniversityID uint
	MinPrice     float64
	MaxPrice     float64
	Page         int
	Limit        int
}

package models

import "time"

type Hostel struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	OwnerID                uint      `json:"ownerId"`
	UniversityID           *uint     `json:"universityId"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	Address                string    `json:"address"`
	Latitude               *float64  `json:"latitude"`
	Longitude              *float64  `json:"longitude"`
	DistanceFromUniversity *float64  `json:"distanceFromUniversity"`
	IsActive               bool      `gorm:"default:true" json:"isActive"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner      User          `gorm:"foreignKey:OwnerID" json:"owner"`
	University *University   `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	RoomTypes  []RoomType    `gorm:"foreignKey:HostelID" json:"roomTypes,omitempty"`
	Images     []HostelImage `gorm:"foreignKey:HostelID" json:"images,omitempty"`
	Reviews    []Review      `gorm:"foreignKey:HostelID" json:"reviews,omitempty"`
	Bookings   []Booking     `gorm:"foreignKey:HostelID" json:"bookings,omitempty"`
}

type HostelImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HostelID uint   `json:"hostelId"`
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	Order    int    `gorm:"default:0" json:"order"`
}

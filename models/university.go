package models

import "time"

type University struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique" json:"name"`
	ShortCode string    `json:"shortCode"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	LogoURL   string    `json:"logoUrl"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Hostels []Hostel `gorm:"foreignKey:UniversityID" json:"hostels,omitempty"`
}

package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type RoomType struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	HostelID       uint           `json:"hostelId"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Capacity       int            `gorm:"default:1" json:"capacity"`
	PricePerMonth  float64        `json:"pricePerMonth"`
	AvailableCount int            `json:"availableCount"`
	TotalCount     int            `json:"totalCount"`
	Amenities      pq.StringArray `gorm:"type:text[]" json:"amenities"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`

	Hostel *Hostel `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
}

// Validate enforces the inventory invariants: total >= 1,
// 0 <= available <= total, price >= 0.
func (r *RoomType) Validate() error {
	if r.TotalCount < 1 {
		return fmt.Errorf("totalCount must be at least 1, got %d", r.TotalCount)
	}
	if r.AvailableCount < 0 || r.AvailableCount > r.TotalCount {
		return fmt.Errorf("availableCount %d out of range [0, %d]", r.AvailableCount, r.TotalCount)
	}
	if r.PricePerMonth < 0 {
		return fmt.Errorf("pricePerMonth must not be negative, got %f", r.PricePerMonth)
	}
	return nil
}

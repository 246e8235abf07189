package models

import (
	"fmt"
	"time"

	"uninest/constants"
)

// Booking status constants
const (
	BookingStatusPending   = constants.BookingStatusPending
	BookingStatusConfirmed = constants.BookingStatusConfirmed
	BookingStatusCompleted = constants.BookingStatusCompleted
	BookingStatusCancelled = constants.BookingStatusCancelled
)

type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `json:"studentId"`
	HostelID   uint      `json:"hostelId"`
	RoomTypeID uint      `json:"roomTypeId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Status     int       `gorm:"default:0" json:"status"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Student  *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Hostel   *Hostel   `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

var bookingStatusLabels = map[int]string{
	BookingStatusPending:   "pending",
	BookingStatusConfirmed: "confirmed",
	BookingStatusCompleted: "completed",
	BookingStatusCancelled: "cancelled",
}

// BookingStatusLabel returns the wire label for a status value.
func BookingStatusLabel(status int) string {
	if label, ok := bookingStatusLabels[status]; ok {
		return label
	}
	return "unknown"
}

// ParseBookingStatus maps a wire label back to its status value.
func ParseBookingStatus(label string) (int, error) {
	for status, l := range bookingStatusLabels {
		if l == label {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown booking status %q", label)
}

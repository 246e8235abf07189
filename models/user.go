package models

import (
	"fmt"
	"time"

	"uninest/constants"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Email      string    `gorm:"unique" json:"email"`
	Password   string    `json:"-"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `gorm:"type:varchar(15)" json:"phone"`
	Role       int       `gorm:"default:0" json:"role"`
	IsVerified bool      `gorm:"default:false" json:"isVerified"`
	Avatar     string    `json:"avatar"`

	Hostels  []Hostel  `gorm:"foreignKey:OwnerID" json:"hostels,omitempty"`
	Bookings []Booking `gorm:"foreignKey:StudentID" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:StudentID" json:"reviews,omitempty"`
}

var roleLabels = map[int]string{
	constants.RoleStudent:     "student",
	constants.RoleHostelOwner: "hostel_owner",
	constants.RoleAdmin:       "admin",
}

// RoleLabel returns the wire label for a role value.
func RoleLabel(role int) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return "unknown"
}

// ParseRole maps a wire label back to its role value.
func ParseRole(label string) (int, error) {
	for role, l := range roleLabels {
		if l == label {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", label)
}

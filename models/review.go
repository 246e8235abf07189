package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"uniqueIndex:idx_review_student_hostel" json:"studentId"`
	HostelID  uint      `gorm:"uniqueIndex:idx_review_student_hostel" json:"hostelId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Student *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Hostel  *Hostel `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
}

package dto

import "time"

// CreateReviewRequest is the payload of POST /reviews.
type CreateReviewRequest struct {
	HostelID uint   `json:"hostelId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// ReviewResponse is the public review shape.
type ReviewResponse struct {
	ID        uint          `json:"id"`
	Student   ActorResponse `json:"student"`
	HostelID  uint          `json:"hostelId"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

package dto

import "time"

// UserResponse is the public user shape.
type UserResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	Avatar     string    `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpdateProfileRequest is the payload of PUT /profile.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
}

// VerifyUserRequest is the admin payload toggling a user's verified flag.
type VerifyUserRequest struct {
	IsVerified *bool `json:"isVerified" binding:"required"`
}

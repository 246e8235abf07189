package dto

import "time"

// CreateBookingRequest is the payload of POST /bookings. Dates use RFC 3339.
type CreateBookingRequest struct {
	HostelID   uint      `json:"hostelId" binding:"required"`
	RoomTypeID uint      `json:"roomTypeId" binding:"required"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	Message    string    `json:"message"`
}

// UpdateBookingStatusRequest is the payload of PUT /bookings/:id.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingHostelResponse is the hostel shape embedded in booking responses.
type BookingHostelResponse struct {
	ID      uint          `json:"id"`
	Name    string        `json:"name"`
	Address string        `json:"address"`
	Owner   ActorResponse `json:"owner"`
}

// BookingRoomTypeResponse is the room-type shape embedded in booking responses.
type BookingRoomTypeResponse struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Capacity      int      `json:"capacity"`
	PricePerMonth float64  `json:"pricePerMonth"`
	Amenities     []string `json:"amenities,omitempty"`
}

// BookingResponse is the public booking shape.
type BookingResponse struct {
	ID         uint                    `json:"id"`
	Student    ActorResponse           `json:"student"`
	Hostel     BookingHostelResponse   `json:"hostel"`
	RoomType   BookingRoomTypeResponse `json:"roomType"`
	StartDate  time.Time               `json:"startDate"`
	EndDate    time.Time               `json:"endDate"`
	TotalPrice float64                 `json:"totalPrice"`
	Status     string                  `json:"status"`
	Message    string                  `json:"message,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// BookingListQuery collects the GET /bookings query filters. Search is
// only honored for admins.
type BookingListQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

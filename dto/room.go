package dto

// CreateRoomTypeRequest is the payload of POST /hostels/:id/roomTypes.
type CreateRoomTypeRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Capacity      int      `json:"capacity" binding:"required,min=1"`
	PricePerMonth float64  `json:"pricePerMonth" binding:"required,gte=0"`
	TotalCount    int      `json:"totalCount" binding:"required,min=1"`
	Amenities     []string `json:"amenities"`
}

// UpdateRoomTypeRequest is the payload of PUT /roomTypes/:id.
type UpdateRoomTypeRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Capacity      *int     `json:"capacity"`
	PricePerMonth *float64 `json:"pricePerMonth"`
	TotalCount    *int     `json:"totalCount"`
	Amenities     []string `json:"amenities"`
}

// RoomTypeResponse is the public room-type shape.
type RoomTypeResponse struct {
	ID             uint     `json:"id"`
	HostelID       uint     `json:"hostelId"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Capacity       int      `json:"capacity"`
	PricePerMonth  float64  `json:"pricePerMonth"`
	AvailableCount int      `json:"availableCount"`
	TotalCount     int      `json:"totalCount"`
	Amenities      []string `json:"amenities"`
}

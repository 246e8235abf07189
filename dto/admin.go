package dto

// AdminUserResponse adds activity counts to the user shape for moderation.
type AdminUserResponse struct {
	UserResponse
	BookingCount int `json:"bookingCount"`
	ReviewCount  int `json:"reviewCount"`
	HostelCount  int `json:"hostelCount"`
}

// AdminStatsResponse is the GET /admin/stats aggregate.
type AdminStatsResponse struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalStudents     int64 `json:"totalStudents"`
	TotalOwners       int64 `json:"totalOwners"`
	TotalHostels      int64 `json:"totalHostels"`
	ActiveHostels     int64 `json:"activeHostels"`
	TotalBookings     int64 `json:"totalBookings"`
	PendingBookings   int64 `json:"pendingBookings"`
	ConfirmedBookings int64 `json:"confirmedBookings"`
	TotalReviews      int64 `json:"totalReviews"`
}

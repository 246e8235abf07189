package constants

// User roles
const (
	RoleStudent     = 0
	RoleHostelOwner = 1
	RoleAdmin       = 2
)

// Booking status
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

// Review rating bounds
const (
	RatingMin = 1
	RatingMax = 5
)

// PasswordMinLength matches the binding rule on RegisterRequest.
const PasswordMinLength = 8

// Pricing: months are billed as 30-day blocks, partial blocks round up.
const DaysPerBillingMonth = 30

package dto

// UniversityResponse is the public university shape with listing counts.
type UniversityResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	ShortCode   string  `json:"shortCode"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	LogoURL     string  `json:"logoUrl,omitempty"`
	HostelCount int     `json:"hostelCount"`
}

package store

import "time"

type User struct {
	ID           string
	DisplayName  string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SavedSearch is a stored AI search request a user can re-run later.
type SavedSearch struct {
	ID           string
	UserID       string
	BusinessType string
	City         string
	RadiusKm     int
	MaxResults   int
	CreatedAt    time.Time
}

// SavedLead is one lead kept from a search result set. SocialMedia and
// Sources are stored as JSON text columns.
type SavedLead struct {
	ID          string
	SearchID    string
	UserID      string
	Name        string
	Address     string
	Phone       string
	Website     string
	Description string
	Rating      string
	Latitude    string
	Longitude   string
	Favorite    string
	SocialMedia map[string]string
	Sources     []string
	CreatedAt   time.Time
}

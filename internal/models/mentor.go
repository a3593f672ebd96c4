package models

import "time"

// Mentor is a user's public mentoring profile. Rating and ReviewCount are
// maintained exclusively by the feedback flow; HourlyRate changes never
// retro-affect already-booked sessions.
type Mentor struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Expertise   []string  `json:"expertise"`
	Bio         string    `json:"bio"`
	Experience  string    `json:"experience"`
	HourlyRate  float64   `json:"hourlyRate"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	IsAvailable bool      `json:"isAvailable"`
	PictureURL  string    `json:"pictureUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Expanded reference, populated on reads
	User *User `json:"user,omitempty"`
}

// UpsertMentorProfileRequest creates or updates the caller's mentor profile
type UpsertMentorProfileRequest struct {
	Expertise  []string `json:"expertise" binding:"required,min=1,dive,required"`
	Bio        string   `json:"bio" binding:"required,max=500"`
	Experience string   `json:"experience" binding:"required"`
	HourlyRate *float64 `json:"hourlyRate" binding:"required,min=0"`
}

// UploadPictureRequest carries a base64-encoded profile picture
type UploadPictureRequest struct {
	ImageData   string `json:"imageData" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// MentorSearchFilters narrows the public mentor listing
type MentorSearchFilters struct {
	Expertise string
	MinRate   *float64
	MaxRate   *float64
}

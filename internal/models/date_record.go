package models

import "time"

// DateRecord is a birth date saved to a user's history
type DateRecord struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Label        string    `json:"label"`
	BirthDate    string    `json:"birth_date"` // Decrypted for response, YYYY-MM-DD
	BirthDateEnc string    `json:"-"`          // Stored form
	Subscribed   bool      `json:"subscribed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subscription is a saved date whose owner receives the monthly digest
type Subscription struct {
	RecordID     int64
	Label        string
	BirthDateEnc string
	Username     string
	Email        string
}

package models

import (
	"encoding/json"
	"time"
)

// Photo represents a single portfolio image
type Photo struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	ImageData   string    `json:"image_data" db:"image_data"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Content represents an editable page section (hero, about, services, contact)
type Content struct {
	Section   string          `json:"section" db:"section"`
	Data      json.RawMessage `json:"data" db:"data"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Admin represents the single administrative principal
type Admin struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

package models

import "time"

type Car struct {
	ID          int64     `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int64     `json:"year"`
	PricePerDay Money     `json:"price_per_day"`
	Image       string    `json:"image,omitempty"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Label is the display name used in listings and exports.
func (c Car) Label() string {
	return c.Make + " " + c.Model
}

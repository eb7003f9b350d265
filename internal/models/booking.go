package models

import "time"

type Booking struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CarID      int64     `json:"car_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice Money     `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	// Filled by listing queries via JOIN; not columns of the bookings table.
	UserName string `json:"user_name,omitempty"`
	CarLabel string `json:"car_label,omitempty"`
}

// DurationDays is the whole-day span between start and end, floored to one
// day when the dates are equal or crossed.
func DurationDays(start, end time.Time) int64 {
	hours := end.Sub(start).Hours()
	days := int64(hours / 24)
	if float64(days*24) < hours {
		days++ // partial day counts as a full one
	}
	if days < 1 {
		days = 1
	}
	return days
}

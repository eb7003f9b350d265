package models

const (
	// StatusConfirmed is the only status the current workflow produces;
	// the column is free text so a richer lifecycle can be added later
	// (pending -> confirmed -> completed/cancelled).
	StatusConfirmed = "confirmed"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	// DefaultSessionTTL время жизни сессии в Redis (секунды)
	DefaultSessionTTL = 24 * 60 * 60

	// LoginRateLimit попыток входа в окно
	LoginRateLimit = 10

	// LoginRateWindow окно ограничения попыток входа (секунды)
	LoginRateWindow = 60
)

// DateInputFormat is the layout of the datetime-local form inputs.
const DateInputFormat = "2006-01-02T15:04"

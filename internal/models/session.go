package models

import "time"

// Flash is a one-shot user-facing message rendered on the next page load.
type Flash struct {
	Level   string `json:"level"` // success, warning, danger
	Message string `json:"message"`
}

const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Session is the server-side state bound to a browser cookie.
type Session struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CSRFSecret string    `json:"csrf_secret"`
	Flashes    []Flash   `json:"flashes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// TakeFlashes returns pending flashes and clears them.
func (s *Session) TakeFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

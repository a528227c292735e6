package dto

import "time"

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// UnreadCountResponse conteo de no leídas.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

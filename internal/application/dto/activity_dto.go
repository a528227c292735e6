package dto

import "time"

// ActivityLogQuery filtros del listado de actividad.
type ActivityLogQuery struct {
	ActivityType string `query:"activity_type"`
	UserID       string `query:"user_id"`
	StartDate    string `query:"start_date"` // YYYY-MM-DD
	EndDate      string `query:"end_date"`
}

// ActivityLogResponse salida de una entrada de actividad.
type ActivityLogResponse struct {
	ID           string         `json:"id"`
	CompanyID    string         `json:"company_id"`
	UserID       *string        `json:"user_id,omitempty"`
	ActivityType string         `json:"activity_type"`
	Description  string         `json:"description"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ActivityStatsResponse agregados de actividad.
type ActivityStatsResponse struct {
	ByType      []ActivityTypeCountDTO `json:"by_type"`
	TopUsers    []ActivityUserCountDTO `json:"top_users"`
	Last24Hours int                    `json:"last_24_hours"`
}

// ActivityTypeCountDTO conteo por tipo.
type ActivityTypeCountDTO struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ActivityUserCountDTO conteo por usuario.
type ActivityUserCountDTO struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

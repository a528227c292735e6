package entity

import "time"

// Tipos de actividad registrados.
const (
	ActivityUserLogin         = "USER_LOGIN"
	ActivityProjectCreated    = "PROJECT_CREATED"
	ActivitySopCreated        = "SOP_CREATED"
	ActivityTimeTrackingStart = "TIME_TRACKING_START"
	ActivityTimeTrackingEnd   = "TIME_TRACKING_END"
)

// ActivityLog es una entrada del log de actividad de la empresa.
type ActivityLog struct {
	ID           string
	CompanyID    string
	UserID       *string
	ActivityType string
	Description  string
	Metadata     map[string]any
	IPAddress    string
	CreatedAt    time.Time
}

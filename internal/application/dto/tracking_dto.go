package dto

import "time"

// StartTrackingRequest inicia una sesión sobre una tarea.
type StartTrackingRequest struct {
	SubProjectID string `json:"sub_project_id" validate:"required,uuid"`
}

// StopTrackingRequest cierra una sesión (notas opcionales).
type StopTrackingRequest struct {
	Notes string `json:"notes,omitempty"`
}

// AddScreenshotRequest agrega la URL de una captura a la sesión activa.
type AddScreenshotRequest struct {
	ScreenshotURL string `json:"screenshot_url" validate:"required,url"`
}

// TrackingResponse salida de una sesión de tracking.
type TrackingResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	SubProjectID    string     `json:"sub_project_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           string     `json:"notes,omitempty"`
	Screenshots     []string   `json:"screenshots,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// StopTrackingResponse sesión cerrada + puntos otorgados.
type StopTrackingResponse struct {
	Tracking     TrackingResponse `json:"tracking"`
	PointsEarned int              `json:"points_earned"`
}

// ActiveTimerResponse proyección de la sesión activa para polling entre
// dispositivos: elapsed_minutes se calcula en lectura, no se almacena.
type ActiveTimerResponse struct {
	Active bool         `json:"active"`
	Timer  *ActiveTimer `json:"timer"`
}

// ActiveTimer datos de la sesión activa.
type ActiveTimer struct {
	ID             string    `json:"id"`
	SubProjectID   string    `json:"sub_project_id"`
	StartTime      time.Time `json:"start_time"`
	ElapsedMinutes int       `json:"elapsed_minutes"`
}

// ActiveSessionConflict payload del 409 al intentar iniciar con sesión activa:
// identifica la sesión existente para que el cliente pueda resincronizar en
// lugar de perder estado.
type ActiveSessionConflict struct {
	Code           string    `json:"code"`
	Message        string    `json:"message"`
	SessionID      string    `json:"session_id"`
	SubProjectID   string    `json:"sub_project_id"`
	StartTime      time.Time `json:"start_time"`
	ElapsedMinutes int       `json:"elapsed_minutes"`
}

// TrackingHistoryQuery rango de fechas para el historial.
type TrackingHistoryQuery struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`
}

package entity

import "time"

// TimeTracking es una sesión de trabajo de un usuario sobre una tarea.
//
// Ciclo de vida: se crea en "start" (IsActive=true, EndTime=nil), se muta una
// sola vez en "stop" (IsActive=false, EndTime y DurationMinutes fijados,
// puntos otorgados) y después solo admite ediciones de notas/capturas.
// Invariante central: como máximo una fila con IsActive=true por usuario,
// respaldada por un índice único parcial en la DB.
type TimeTracking struct {
	ID              string
	UserID          string
	SubProjectID    string
	StartTime       time.Time
	EndTime         *time.Time // nil mientras la sesión está activa
	DurationMinutes int
	Notes           string
	Screenshots     []string // URLs
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ElapsedMinutes devuelve los minutos transcurridos desde StartTime hasta now,
// calculados en lectura (no se almacenan mientras la sesión está activa).
func (t *TimeTracking) ElapsedMinutes(now time.Time) int {
	if now.Before(t.StartTime) {
		return 0
	}
	return int(now.Sub(t.StartTime) / time.Minute)
}

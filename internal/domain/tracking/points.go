// Package tracking contiene las reglas puras del sistema de puntos por
// sesiones de trabajo. Sin dependencias de infraestructura: los use cases
// calculan aquí y persisten fuera.
package tracking

// Parámetros del sistema de puntos.
//
// El tope de 16 puntos por sesión (8 horas) es un techo anti-abuso deliberado:
// una sesión que corre más allá de 8 horas no acumula puntos adicionales.
const (
	MinutesPerPoint     = 30 // 1 punto por cada 30 minutos completos
	MinSessionMinutes   = 15 // sesiones menores a 15 minutos no otorgan puntos
	MaxPointsPerSession = 16
)

// PointsForDuration calcula los puntos otorgados por una sesión de
// durationMinutes minutos: 0 bajo el umbral mínimo, si no
// min(floor(duración/30), 16).
func PointsForDuration(durationMinutes int) int {
	if durationMinutes < MinSessionMinutes {
		return 0
	}
	points := durationMinutes / MinutesPerPoint
	if points > MaxPointsPerSession {
		return MaxPointsPerSession
	}
	return points
}

package tracking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive-api/internal/domain/tracking"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestPointsForDuration cubre los bordes del sistema de puntos: umbral mínimo
// de 15 minutos, bloques de 30 minutos y tope de 16 puntos por sesión.
// ──────────────────────────────────────────────────────────────────────────────

func TestPointsForDuration_Bordes(t *testing.T) {
	cases := []struct {
		name     string
		minutes  int
		expected int
	}{
		{"cero minutos", 0, 0},
		{"bajo el umbral", 14, 0},
		{"en el umbral pero bajo 30", 15, 0},
		{"justo antes del primer punto", 29, 0},
		{"primer punto", 30, 1},
		{"bloque incompleto", 44, 1},
		{"bloque incompleto alto", 45, 1},
		{"dos puntos", 60, 2},
		{"ocho horas alcanza el tope", 480, 16},
		{"más allá del tope sigue en 16", 1000, 16},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tracking.PointsForDuration(tc.minutes),
				"puntos para %d minutos", tc.minutes)
		})
	}
}

func TestPointsForDuration_NegativoNoOtorga(t *testing.T) {
	assert.Equal(t, 0, tracking.PointsForDuration(-30))
}

package alert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/alert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de clasificación de alertas. La frontera CRITICAL/LOW se evalúa en
// enteros (2*cantidad < umbral) para que no dependa de coma flotante.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_Fronteras(t *testing.T) {
	cases := []struct {
		name         string
		quantity     int64
		minThreshold int64
		want         string
	}{
		{"cantidad cero siempre es OUT_OF_STOCK", 0, 5, alert.LevelOutOfStock},
		{"cantidad cero aun sin umbral", 0, 0, alert.LevelOutOfStock},
		{"por debajo de la mitad del umbral es CRITICAL", 2, 5, alert.LevelCritical},
		{"exactamente la mitad es LOW, no CRITICAL", 3, 6, alert.LevelLow},
		{"por encima de la mitad pero bajo el umbral es LOW", 3, 5, alert.LevelLow},
		{"justo en el umbral es OK", 5, 5, alert.LevelOK},
		{"sobre el umbral es OK", 10, 5, alert.LevelOK},
		{"umbral cero con stock es OK", 7, 0, alert.LevelOK},
		{"1 de 100 es CRITICAL", 1, 100, alert.LevelCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, alert.Classify(tc.quantity, tc.minThreshold))
		})
	}
}

func TestShortage_NuncaNegativo(t *testing.T) {
	assert.Equal(t, int64(3), alert.Shortage(2, 5), "faltante = umbral - cantidad")
	assert.Equal(t, int64(0), alert.Shortage(5, 5))
	assert.Equal(t, int64(0), alert.Shortage(10, 5), "el exceso no es faltante")
	assert.Equal(t, int64(5), alert.Shortage(0, 5))
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{alert.LevelOK, alert.LevelLow, alert.LevelCritical, alert.LevelOutOfStock} {
		assert.True(t, alert.ValidLevel(level))
	}
	assert.False(t, alert.ValidLevel("WARNING"))
	assert.False(t, alert.ValidLevel(""))
}

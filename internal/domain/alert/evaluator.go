// Package alert clasifica niveles de stock contra el umbral mínimo por
// producto. Es una vista derivada de solo lectura: se recalcula en cada
// consulta (nunca se mantiene incrementalmente) porque depende del stock
// vigente y de configuración de catálogo que cambia por su cuenta.
package alert

// Niveles de alerta de stock.
const (
	LevelOK         = "OK"
	LevelLow        = "LOW"
	LevelCritical   = "CRITICAL"
	LevelOutOfStock = "OUT_OF_STOCK"
)

// ValidLevel verifica que el nivel de alerta sea conocido.
func ValidLevel(level string) bool {
	switch level {
	case LevelOK, LevelLow, LevelCritical, LevelOutOfStock:
		return true
	}
	return false
}

// Shortage devuelve max(0, umbral - cantidad).
func Shortage(quantity, minThreshold int64) int64 {
	if s := minThreshold - quantity; s > 0 {
		return s
	}
	return 0
}

// Classify clasifica un par (cantidad, umbral mínimo):
//   - cantidad == 0                      → OUT_OF_STOCK
//   - faltante > 0 y cantidad/umbral < ½ → CRITICAL
//   - faltante > 0                       → LOW
//   - en otro caso                       → OK
//
// La comparación de la razón se hace en enteros (2*cantidad < umbral) para
// no pasar por coma flotante.
func Classify(quantity, minThreshold int64) string {
	if quantity == 0 {
		return LevelOutOfStock
	}
	if Shortage(quantity, minThreshold) > 0 {
		if 2*quantity < minThreshold {
			return LevelCritical
		}
		return LevelLow
	}
	return LevelOK
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// respondWith monta una app mínima que responde el error dado y devuelve la
// respuesta mapeada.
func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondDomainError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, reqErr := io.ReadAll(resp.Body)
	require.NoError(t, reqErr)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestRespondDomainError_MapeaCadaSentinela(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"stock insuficiente", domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"transición ilegal", domain.ErrInvalidTransferTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"misma tienda", domain.ErrSameShopTransfer, http.StatusBadRequest, "SAME_SHOP"},
		{"tienda sin stock", domain.ErrEmptyShopInventory, http.StatusBadRequest, "EMPTY_INVENTORY"},
		{"ajuste sin cambio", domain.ErrNoOpAdjustment, http.StatusBadRequest, "NO_OP_ADJUSTMENT"},
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"conflicto", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"desconocido", errors.New("algo inesperado"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respondWith(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

func TestRespondDomainError_FalloDeTransaccionReintentable(t *testing.T) {
	// Mismo envoltorio que produce el TxRunner cuando Begin/Commit fallan
	err := fmt.Errorf("%w: commit transaction: %w", domain.ErrLedgerWriteFailed, errors.New("connection reset"))

	status, body := respondWith(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "LEDGER_WRITE_FAILED", body.Code,
		"el caller distingue el fallo de transacción, que es seguro reintentar")
	assert.True(t, errors.Is(err, domain.ErrLedgerWriteFailed))
}

func TestRespondDomainError_DetalleDeStockInsuficiente(t *testing.T) {
	err := &domain.InsufficientStockError{
		ShopID:    "tienda-1",
		ProductID: "producto-1",
		Requested: 5,
		Available: 3,
	}

	status, body := respondWith(t, err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "tienda-1", "el mensaje lleva el contexto para corregir la acción")
	assert.Contains(t, body.Message, "producto-1")
}

package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la máquina de estados de traslados. La tabla de transiciones es el
// único guard: todo lo que no aparece en ella debe rechazarse, sin importar
// desde qué acción se invoque.
// ──────────────────────────────────────────────────────────────────────────────

func TestNextTransferStatus_TransicionesValidas(t *testing.T) {
	cases := []struct {
		current string
		action  string
		want    string
	}{
		{entity.TransferPENDING, entity.TransferActionApprove, entity.TransferAPPROVED},
		{entity.TransferPENDING, entity.TransferActionCancel, entity.TransferCANCELLED},
		{entity.TransferAPPROVED, entity.TransferActionShip, entity.TransferINTRANSIT},
		{entity.TransferAPPROVED, entity.TransferActionCancel, entity.TransferCANCELLED},
		{entity.TransferINTRANSIT, entity.TransferActionReceive, entity.TransferCOMPLETED},
	}
	for _, tc := range cases {
		got, err := entity.NextTransferStatus(tc.current, tc.action)
		require.NoError(t, err, "%s + %s debe ser una transición válida", tc.current, tc.action)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextTransferStatus_TransicionesIlegales(t *testing.T) {
	cases := []struct {
		current string
		action  string
	}{
		// No se puede despachar ni recibir sin aprobar primero
		{entity.TransferPENDING, entity.TransferActionShip},
		{entity.TransferPENDING, entity.TransferActionReceive},
		{entity.TransferAPPROVED, entity.TransferActionReceive},
		// Una vez despachado, la mercancía está comprometida: no se cancela
		{entity.TransferINTRANSIT, entity.TransferActionCancel},
		{entity.TransferINTRANSIT, entity.TransferActionApprove},
		{entity.TransferINTRANSIT, entity.TransferActionShip},
		// Estados terminales: sin salida
		{entity.TransferCOMPLETED, entity.TransferActionApprove},
		{entity.TransferCOMPLETED, entity.TransferActionReceive},
		{entity.TransferCOMPLETED, entity.TransferActionCancel},
		{entity.TransferCANCELLED, entity.TransferActionApprove},
		{entity.TransferCANCELLED, entity.TransferActionShip},
		{entity.TransferCANCELLED, entity.TransferActionCancel},
		// Estado o acción desconocidos
		{"UNKNOWN", entity.TransferActionApprove},
		{entity.TransferPENDING, "UNKNOWN"},
	}
	for _, tc := range cases {
		_, err := entity.NextTransferStatus(tc.current, tc.action)
		assert.ErrorIs(t, err, domain.ErrInvalidTransferTransition,
			"%s + %s debe rechazarse", tc.current, tc.action)
	}
}

func TestTransferApply_MutaSoloSiEsValida(t *testing.T) {
	tr := &entity.Transfer{Status: entity.TransferPENDING}

	require.NoError(t, tr.Apply(entity.TransferActionApprove))
	assert.Equal(t, entity.TransferAPPROVED, tr.Status)

	// Una acción ilegal no debe mover el estado
	err := tr.Apply(entity.TransferActionReceive)
	assert.ErrorIs(t, err, domain.ErrInvalidTransferTransition)
	assert.Equal(t, entity.TransferAPPROVED, tr.Status, "el estado no debe cambiar tras un rechazo")
}

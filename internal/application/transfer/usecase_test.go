package transfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/apptest"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000c1"
	testUserID    = "00000000-0000-0000-0000-0000000000u1"
	testShopFrom  = "00000000-0000-0000-0000-0000000000s1"
	testShopTo    = "00000000-0000-0000-0000-0000000000s2"
	testProductA  = "00000000-0000-0000-0000-0000000000pa"
)

func newService(store *apptest.Store) *transfer.Service {
	return transfer.NewService(
		apptest.NewTxRunner(store),
		apptest.NewTransferRepo(store),
		apptest.NewShopRepo(store),
		apptest.NewProductRepo(store),
	)
}

func seededStore() *apptest.Store {
	store := apptest.NewStore()
	store.SeedShop(testShopFrom, testCompanyID)
	store.SeedShop(testShopTo, testCompanyID)
	store.SeedProduct(testProductA, testCompanyID, 5)
	return store
}

func createTransfer(t *testing.T, svc *transfer.Service, qty int64) *entity.Transfer {
	t.Helper()
	tr, err := svc.Create(context.Background(), transfer.CreateInput{
		CompanyID:      testCompanyID,
		UserID:         testUserID,
		TransferNumber: "TR-001",
		FromShopID:     testShopFrom,
		ToShopID:       testShopTo,
		Lines:          []transfer.CreateLineInput{{ProductID: testProductA, Quantity: qty}},
	})
	require.NoError(t, err)
	return tr
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPendienteSinTocarStock(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)

	tr := createTransfer(t, svc, 5)

	assert.Equal(t, entity.TransferPENDING, tr.Status)
	assert.NotEmpty(t, tr.ID)
	assert.Equal(t, int64(10), store.Quantity(testShopFrom, testProductA),
		"crear un traslado no reserva ni descuenta stock")
	assert.Empty(t, store.Entries)
}

func TestCreate_MismaTiendaRechazada(t *testing.T) {
	store := seededStore()
	svc := newService(store)

	_, err := svc.Create(context.Background(), transfer.CreateInput{
		CompanyID:      testCompanyID,
		UserID:         testUserID,
		TransferNumber: "TR-002",
		FromShopID:     testShopFrom,
		ToShopID:       testShopFrom,
		Lines:          []transfer.CreateLineInput{{ProductID: testProductA, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrSameShopTransfer)
}

func TestCreate_SinLineasRechazado(t *testing.T) {
	store := seededStore()
	svc := newService(store)

	_, err := svc.Create(context.Background(), transfer.CreateInput{
		CompanyID:      testCompanyID,
		TransferNumber: "TR-003",
		FromShopID:     testShopFrom,
		ToShopID:       testShopTo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: el stock total del sistema se conserva.
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_ConservaStockTotal(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)

	tr, err := svc.Approve(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferAPPROVED, tr.Status)
	assert.Equal(t, int64(10), store.Quantity(testShopFrom, testProductA),
		"aprobar tampoco toca el stock")

	tr, err = svc.Ship(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferINTRANSIT, tr.Status)
	assert.Equal(t, int64(5), store.Quantity(testShopFrom, testProductA))
	assert.Equal(t, int64(0), store.Quantity(testShopTo, testProductA))
	require.Len(t, store.EntriesByKind(entity.MovementTRANSFER_OUT), 1)
	require.NotNil(t, tr.Lines[0].QuantityShipped)
	assert.Equal(t, int64(5), *tr.Lines[0].QuantityShipped)

	tr, err = svc.Receive(ctx, testCompanyID, tr.ID, testUserID, transfer.ReceiveInput{})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCOMPLETED, tr.Status)
	assert.Equal(t, int64(5), store.Quantity(testShopFrom, testProductA))
	assert.Equal(t, int64(5), store.Quantity(testShopTo, testProductA))
	require.Len(t, store.EntriesByKind(entity.MovementTRANSFER_IN), 1)

	total := store.Quantity(testShopFrom, testProductA) + store.Quantity(testShopTo, testProductA)
	assert.Equal(t, int64(10), total, "el traslado mueve stock, nunca lo crea ni lo destruye")

	outEntry := store.EntriesByKind(entity.MovementTRANSFER_OUT)[0]
	inEntry := store.EntriesByKind(entity.MovementTRANSFER_IN)[0]
	assert.Equal(t, tr.ID, outEntry.ReferenceID)
	assert.Equal(t, tr.ID, inEntry.ReferenceID)
	assert.Equal(t, -inEntry.Delta, outEntry.Delta, "salida y entrada son simétricas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestShip_StockInsuficienteNoAplicaNada(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 3)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)
	tr, err := svc.Approve(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.Ship(ctx, testCompanyID, tr.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, err := svc.GetByID(ctx, testCompanyID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferAPPROVED, stored.Status,
		"el traslado debe quedar en APPROVED, listo para reintentar")
	assert.Nil(t, stored.Lines[0].QuantityShipped)
	assert.Equal(t, int64(3), store.Quantity(testShopFrom, testProductA))
	assert.Empty(t, store.Entries, "no debe quedar ningún asiento del despacho fallido")
}

func TestShip_SinAprobarRechazado(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)

	tr := createTransfer(t, svc, 5)
	_, err := svc.Ship(context.Background(), testCompanyID, tr.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransferTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ParcialDeclarado(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)
	tr, err := svc.Approve(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	tr, err = svc.Ship(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)

	// Llegaron 3 de las 5 despachadas; el faltante queda visible en la línea
	tr, err = svc.Receive(ctx, testCompanyID, tr.ID, testUserID, transfer.ReceiveInput{
		ReceivedByLine: map[string]int64{tr.Lines[0].ID: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransferCOMPLETED, tr.Status)
	assert.Equal(t, int64(3), *tr.Lines[0].QuantityReceived)
	assert.Equal(t, int64(5), *tr.Lines[0].QuantityShipped,
		"lo despachado no se reescribe: la merma es la diferencia")
	assert.Equal(t, int64(3), store.Quantity(testShopTo, testProductA))
}

func TestReceive_ClaveDeLineaDesconocidaRechazada(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)
	tr, err := svc.Approve(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	tr, err = svc.Ship(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)

	// El receptor declara una cantidad para una línea que no existe: no se
	// ignora en silencio recibiendo todo completo
	_, err = svc.Receive(ctx, testCompanyID, tr.ID, testUserID, transfer.ReceiveInput{
		ReceivedByLine: map[string]int64{"linea-que-no-existe": 3},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := svc.GetByID(ctx, testCompanyID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferINTRANSIT, stored.Status, "sigue en tránsito")
	assert.Nil(t, stored.Lines[0].QuantityReceived)
	assert.Equal(t, int64(0), store.Quantity(testShopTo, testProductA))
}

func TestReceive_DeclaradoMayorQueDespachoRechazado(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)
	tr, err := svc.Approve(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	tr, err = svc.Ship(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.Receive(ctx, testCompanyID, tr.ID, testUserID, transfer.ReceiveInput{
		ReceivedByLine: map[string]int64{tr.Lines[0].ID: 7},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := svc.GetByID(ctx, testCompanyID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferINTRANSIT, stored.Status, "sigue en tránsito")
	assert.Equal(t, int64(0), store.Quantity(testShopTo, testProductA))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_AntesDelDespacho(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)
	tr, err := svc.Cancel(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCANCELLED, tr.Status)
	assert.Empty(t, store.Entries, "cancelar nunca toca el libro")
}

func TestCancel_DespuesDelDespachoRechazado(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)
	tr, err := svc.Approve(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)
	tr, err = svc.Ship(ctx, testCompanyID, tr.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, testCompanyID, tr.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransferTransition,
		"la mercancía despachada está comprometida: solo puede recibirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento por empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestAcciones_OtraEmpresaProhibido(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopFrom, testProductA, 10)
	svc := newService(store)
	ctx := context.Background()

	tr := createTransfer(t, svc, 5)

	_, err := svc.Approve(ctx, "otra-empresa", tr.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(ctx, "otra-empresa", tr.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package counting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/apptest"
	"github.com/jhoicas/Almacen-api/internal/application/counting"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000c1"
	testUserID    = "00000000-0000-0000-0000-0000000000u1"
	testShopID    = "00000000-0000-0000-0000-0000000000s1"
	testProductA  = "00000000-0000-0000-0000-0000000000pa"
	testProductB  = "00000000-0000-0000-0000-0000000000pb"
)

func newService(store *apptest.Store, policy counting.UncountedPolicy) *counting.Service {
	return counting.NewService(
		apptest.NewTxRunner(store),
		apptest.NewSessionRepo(store),
		apptest.NewShopRepo(store),
		policy,
	)
}

func seededStore() *apptest.Store {
	store := apptest.NewStore()
	store.SeedShop(testShopID, testCompanyID)
	store.SeedProduct(testProductA, testCompanyID, 5)
	store.SeedProduct(testProductB, testCompanyID, 5)
	return store
}

func startedSession(t *testing.T, svc *counting.Service) *entity.InventorySession {
	t.Helper()
	ctx := context.Background()
	session, err := svc.Create(ctx, counting.CreateInput{
		CompanyID:       testCompanyID,
		UserID:          testUserID,
		InventoryNumber: "INV-001",
		ShopID:          testShopID,
	})
	require.NoError(t, err)
	session, err = svc.Start(ctx, testCompanyID, session.ID, testUserID)
	require.NoError(t, err)
	return session
}

func lineFor(t *testing.T, session *entity.InventorySession, productID string) *entity.CountLine {
	t.Helper()
	for _, line := range session.Lines {
		if line.ProductID == productID {
			return line
		}
	}
	t.Fatalf("la sesión no tiene línea para %s", productID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_CongelaElSnapshot(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	store.SeedLevel(testShopID, testProductB, 4)
	svc := newService(store, counting.PolicySkipUncounted)

	session := startedSession(t, svc)

	assert.Equal(t, entity.SessionINPROGRESS, session.Status)
	require.Len(t, session.Lines, 2, "una línea por cada fila de stock rastreada")
	assert.Equal(t, int64(10), lineFor(t, session, testProductA).ExpectedQuantity)
	assert.Equal(t, int64(4), lineFor(t, session, testProductB).ExpectedQuantity)
	assert.Empty(t, store.Entries, "iniciar no toca el libro")
}

func TestStart_TiendaSinStockRechazada(t *testing.T) {
	store := seededStore()
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session, err := svc.Create(ctx, counting.CreateInput{
		CompanyID:       testCompanyID,
		UserID:          testUserID,
		InventoryNumber: "INV-002",
		ShopID:          testShopID,
	})
	require.NoError(t, err)

	_, err = svc.Start(ctx, testCompanyID, session.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrEmptyShopInventory)
}

func TestStart_DosVecesRechazado(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	svc := newService(store, counting.PolicySkipUncounted)

	session := startedSession(t, svc)
	_, err := svc.Start(context.Background(), testCompanyID, session.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "el snapshot se toma una sola vez")
}

func TestVentaDuranteElConteoNoAlteraElSnapshot(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session := startedSession(t, svc)

	// Se vende una unidad mientras el conteo está en curso
	store.SeedLevel(testShopID, testProductA, 9)

	got, err := svc.GetByID(ctx, testCompanyID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), lineFor(t, got, testProductA).ExpectedQuantity,
		"la cantidad esperada quedó congelada al iniciar; la venta ya tiene su propio asiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordCount_RegistraYCorrige(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session := startedSession(t, svc)

	line, err := svc.RecordCount(ctx, testCompanyID, session.ID, testProductA, 7, testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *line.CountedQuantity)
	assert.Equal(t, testUserID, line.CountedBy)

	// Recontar sobrescribe el valor anterior
	line, err = svc.RecordCount(ctx, testCompanyID, session.ID, testProductA, 8, testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), *line.CountedQuantity)
}

func TestRecordCount_Validaciones(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session := startedSession(t, svc)

	_, err := svc.RecordCount(ctx, testCompanyID, session.ID, testProductA, -1, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un conteo físico no puede ser negativo")

	_, err = svc.RecordCount(ctx, testCompanyID, session.ID, "producto-fuera-del-snapshot", 3, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación: la conciliación escribe COUNT_RECONCILE por cada discrepancia.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ConciliaDiscrepancias(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	store.SeedLevel(testShopID, testProductB, 4)
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session := startedSession(t, svc)
	_, err := svc.RecordCount(ctx, testCompanyID, session.ID, testProductA, 8, testUserID)
	require.NoError(t, err)
	_, err = svc.RecordCount(ctx, testCompanyID, session.ID, testProductB, 4, testUserID)
	require.NoError(t, err)

	session, err = svc.Validate(ctx, testCompanyID, session.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionCOMPLETED, session.Status)

	reconciles := store.EntriesByKind(entity.MovementCOUNT_RECONCILE)
	require.Len(t, reconciles, 1, "solo la línea con discrepancia genera asiento")
	assert.Equal(t, int64(-2), reconciles[0].Delta)
	assert.Equal(t, entity.ReferenceInventory, reconciles[0].ReferenceType)
	assert.Equal(t, session.ID, reconciles[0].ReferenceID)

	assert.Equal(t, int64(8), store.Quantity(testShopID, testProductA),
		"tras validar, la cantidad vigente es la contada")
	assert.Equal(t, int64(4), store.Quantity(testShopID, testProductB))
}

func TestValidate_PoliticaSkipOmiteLineasSinConteo(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	store.SeedLevel(testShopID, testProductB, 4)
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session := startedSession(t, svc)
	// Solo se cuenta el producto A; B queda sin conteo
	_, err := svc.RecordCount(ctx, testCompanyID, session.ID, testProductA, 10, testUserID)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, testCompanyID, session.ID, testUserID)
	require.NoError(t, err)

	assert.Empty(t, store.EntriesByKind(entity.MovementCOUNT_RECONCILE))
	assert.Equal(t, int64(4), store.Quantity(testShopID, testProductB),
		"con skip, la línea sin conteo se asume correcta")
}

func TestValidate_PoliticaAsZeroConciliaLineasSinConteo(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	store.SeedLevel(testShopID, testProductB, 4)
	svc := newService(store, counting.PolicyCountAsZero)
	ctx := context.Background()

	session := startedSession(t, svc)
	_, err := svc.RecordCount(ctx, testCompanyID, session.ID, testProductA, 10, testUserID)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, testCompanyID, session.ID, testUserID)
	require.NoError(t, err)

	reconciles := store.EntriesByKind(entity.MovementCOUNT_RECONCILE)
	require.Len(t, reconciles, 1)
	assert.Equal(t, int64(-4), reconciles[0].Delta)
	assert.Equal(t, int64(0), store.Quantity(testShopID, testProductB),
		"con as_zero, la línea sin conteo se concilia como contada en 0")
}

func TestValidate_DosVecesRechazado(t *testing.T) {
	store := seededStore()
	store.SeedLevel(testShopID, testProductA, 10)
	svc := newService(store, counting.PolicySkipUncounted)
	ctx := context.Background()

	session := startedSession(t, svc)
	_, err := svc.Validate(ctx, testCompanyID, session.ID, testUserID)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, testCompanyID, session.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "la validación es irreversible y única")
}

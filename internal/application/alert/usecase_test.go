package alert_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/alert"
	"github.com/jhoicas/Almacen-api/internal/application/apptest"
	"github.com/jhoicas/Almacen-api/internal/domain"
	domainalert "github.com/jhoicas/Almacen-api/internal/domain/alert"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000c1"
	testShopID    = "00000000-0000-0000-0000-0000000000s1"
)

// seedCatalog registra productos con umbral y su stock vigente en la tienda.
func seedCatalog(store *apptest.Store, stock map[string]struct{ qty, min int64 }) {
	store.SeedShop(testShopID, testCompanyID)
	for productID, s := range stock {
		store.SeedProduct(productID, testCompanyID, s.min)
		store.SeedLevel(testShopID, productID, s.qty)
	}
}

func TestListByShop_ClasificaCadaProducto(t *testing.T) {
	store := apptest.NewStore()
	seedCatalog(store, map[string]struct{ qty, min int64 }{
		"prod-ok":       {qty: 10, min: 5},
		"prod-low":      {qty: 3, min: 5},
		"prod-critical": {qty: 2, min: 5},
		"prod-out":      {qty: 0, min: 5},
	})
	svc := alert.NewService(apptest.NewStockLevelRepo(store), apptest.NewShopRepo(store))

	alerts, err := svc.ListByShop(context.Background(), testCompanyID, testShopID, "")
	require.NoError(t, err)
	require.Len(t, alerts, 4)

	byProduct := make(map[string]string)
	for _, a := range alerts {
		byProduct[a.ProductID] = a.Level
	}
	assert.Equal(t, domainalert.LevelOK, byProduct["prod-ok"])
	assert.Equal(t, domainalert.LevelLow, byProduct["prod-low"])
	assert.Equal(t, domainalert.LevelCritical, byProduct["prod-critical"])
	assert.Equal(t, domainalert.LevelOutOfStock, byProduct["prod-out"])
}

func TestListByShop_FiltraPorNivel(t *testing.T) {
	store := apptest.NewStore()
	seedCatalog(store, map[string]struct{ qty, min int64 }{
		"prod-ok":  {qty: 10, min: 5},
		"prod-out": {qty: 0, min: 5},
	})
	svc := alert.NewService(apptest.NewStockLevelRepo(store), apptest.NewShopRepo(store))

	alerts, err := svc.ListByShop(context.Background(), testCompanyID, testShopID, domainalert.LevelOutOfStock)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "prod-out", alerts[0].ProductID)
	assert.Equal(t, int64(5), alerts[0].Shortage)
}

func TestListByShop_ReflejaElUmbralVigenteDelCatalogo(t *testing.T) {
	store := apptest.NewStore()
	seedCatalog(store, map[string]struct{ qty, min int64 }{
		"prod-a": {qty: 6, min: 5},
	})
	svc := alert.NewService(apptest.NewStockLevelRepo(store), apptest.NewShopRepo(store))
	ctx := context.Background()

	alerts, err := svc.ListByShop(ctx, testCompanyID, testShopID, "")
	require.NoError(t, err)
	assert.Equal(t, domainalert.LevelOK, alerts[0].Level)

	// El catálogo sube el umbral: la siguiente consulta ya lo refleja,
	// sin ningún paso de sincronización
	store.Products["prod-a"].MinThreshold = 20
	alerts, err = svc.ListByShop(ctx, testCompanyID, testShopID, "")
	require.NoError(t, err)
	assert.Equal(t, domainalert.LevelCritical, alerts[0].Level)
}

func TestListByShop_TiendaAjena(t *testing.T) {
	store := apptest.NewStore()
	seedCatalog(store, map[string]struct{ qty, min int64 }{
		"prod-a": {qty: 6, min: 5},
	})
	svc := alert.NewService(apptest.NewStockLevelRepo(store), apptest.NewShopRepo(store))

	_, err := svc.ListByShop(context.Background(), "otra-empresa", testShopID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListByShop(context.Background(), testCompanyID, "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

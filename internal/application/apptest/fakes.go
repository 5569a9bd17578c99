// Package apptest provee repositorios en memoria y un TxRunner con semántica
// de snapshot/rollback para los tests de los casos de uso. El TxRunner toma
// una copia del estado antes de ejecutar la función y la restaura si esta
// falla: así los tests verifican de verdad el todo-o-nada de cada operación.
package apptest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios fake.
type Store struct {
	Shops       map[string]*entity.Shop
	Products    map[string]*entity.Product
	Levels      map[string]*entity.StockLevel // clave shopID + "/" + productID
	Entries     []*entity.LedgerEntry
	Transfers   map[string]*entity.Transfer
	Sessions    map[string]*entity.InventorySession
	Adjustments map[string]*entity.Adjustment
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		Shops:       make(map[string]*entity.Shop),
		Products:    make(map[string]*entity.Product),
		Levels:      make(map[string]*entity.StockLevel),
		Transfers:   make(map[string]*entity.Transfer),
		Sessions:    make(map[string]*entity.InventorySession),
		Adjustments: make(map[string]*entity.Adjustment),
	}
}

// SeedShop registra una tienda.
func (s *Store) SeedShop(id, companyID string) {
	s.Shops[id] = &entity.Shop{ID: id, CompanyID: companyID, Name: "Tienda " + id}
}

// SeedProduct registra un producto del catálogo.
func (s *Store) SeedProduct(id, companyID string, minThreshold int64) {
	s.Products[id] = &entity.Product{ID: id, CompanyID: companyID, Name: "Producto " + id, MinThreshold: minThreshold}
}

// SeedLevel fija el stock vigente de un producto en una tienda.
func (s *Store) SeedLevel(shopID, productID string, quantity int64) {
	s.Levels[shopID+"/"+productID] = &entity.StockLevel{
		ShopID:    shopID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}
}

// Quantity devuelve la cantidad vigente; 0 si no hay fila.
func (s *Store) Quantity(shopID, productID string) int64 {
	if level, ok := s.Levels[shopID+"/"+productID]; ok {
		return level.Quantity
	}
	return 0
}

// EntriesByKind devuelve los asientos de un tipo dado.
func (s *Store) EntriesByKind(kind string) []*entity.LedgerEntry {
	var out []*entity.LedgerEntry
	for _, e := range s.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) snapshot() *Store {
	cp := NewStore()
	for k, v := range s.Shops {
		shop := *v
		cp.Shops[k] = &shop
	}
	for k, v := range s.Products {
		product := *v
		cp.Products[k] = &product
	}
	for k, v := range s.Levels {
		level := *v
		cp.Levels[k] = &level
	}
	for _, e := range s.Entries {
		entry := *e
		cp.Entries = append(cp.Entries, &entry)
	}
	for k, v := range s.Transfers {
		cp.Transfers[k] = cloneTransfer(v)
	}
	for k, v := range s.Sessions {
		cp.Sessions[k] = cloneSession(v)
	}
	for k, v := range s.Adjustments {
		adj := *v
		cp.Adjustments[k] = &adj
	}
	return cp
}

func (s *Store) restore(from *Store) {
	s.Shops = from.Shops
	s.Products = from.Products
	s.Levels = from.Levels
	s.Entries = from.Entries
	s.Transfers = from.Transfers
	s.Sessions = from.Sessions
	s.Adjustments = from.Adjustments
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	cp := *t
	cp.Lines = nil
	for _, line := range t.Lines {
		l := *line
		if line.QuantityShipped != nil {
			v := *line.QuantityShipped
			l.QuantityShipped = &v
		}
		if line.QuantityReceived != nil {
			v := *line.QuantityReceived
			l.QuantityReceived = &v
		}
		cp.Lines = append(cp.Lines, &l)
	}
	return &cp
}

func cloneSession(s *entity.InventorySession) *entity.InventorySession {
	cp := *s
	cp.Lines = nil
	for _, line := range s.Lines {
		l := *line
		if line.CountedQuantity != nil {
			v := *line.CountedQuantity
			l.CountedQuantity = &v
		}
		cp.Lines = append(cp.Lines, &l)
	}
	return &cp
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner implementa los puertos TxRunner de ledger, transfer, counting y
// adjustment contra el Store, con rollback por snapshot.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner de transacciones fake.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(fn func() error) error {
	before := r.store.snapshot()
	if err := fn(); err != nil {
		r.store.restore(before)
		return err
	}
	return nil
}

// Run implementa ledger.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	return r.run(func() error {
		return fn(NewStockLevelRepo(r.store), NewLedgerRepo(r.store))
	})
}

// RunTransfer implementa transfer.TxRunner.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.run(func() error {
		return fn(NewStockLevelRepo(r.store), NewLedgerRepo(r.store), NewTransferRepo(r.store))
	})
}

// RunCounting implementa counting.TxRunner.
func (r *TxRunner) RunCounting(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	sessionRepo repository.InventorySessionRepository,
) error) error {
	return r.run(func() error {
		return fn(NewStockLevelRepo(r.store), NewLedgerRepo(r.store), NewSessionRepo(r.store))
	})
}

// RunAdjustment implementa adjustment.TxRunner.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	ledgerRepo repository.LedgerRepository,
	adjustmentRepo repository.AdjustmentRepository,
) error) error {
	return r.run(func() error {
		return fn(NewStockLevelRepo(r.store), NewLedgerRepo(r.store), NewAdjustmentRepo(r.store))
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

// ShopRepo fake de ShopRepository.
type ShopRepo struct{ store *Store }

// NewShopRepo construye el fake.
func NewShopRepo(store *Store) *ShopRepo { return &ShopRepo{store: store} }

func (r *ShopRepo) GetByID(id string) (*entity.Shop, error) {
	shop, ok := r.store.Shops[id]
	if !ok {
		return nil, nil
	}
	cp := *shop
	return &cp, nil
}

func (r *ShopRepo) ListByCompany(companyID string) ([]*entity.Shop, error) {
	var out []*entity.Shop
	for _, shop := range r.store.Shops {
		if shop.CompanyID == companyID {
			cp := *shop
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ProductRepo fake de ProductRepository.
type ProductRepo struct{ store *Store }

// NewProductRepo construye el fake.
func NewProductRepo(store *Store) *ProductRepo { return &ProductRepo{store: store} }

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	product, ok := r.store.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

// StockLevelRepo fake de StockLevelRepository.
type StockLevelRepo struct{ store *Store }

// NewStockLevelRepo construye el fake.
func NewStockLevelRepo(store *Store) *StockLevelRepo { return &StockLevelRepo{store: store} }

func (r *StockLevelRepo) Get(shopID, productID string) (*entity.StockLevel, error) {
	if level, ok := r.store.Levels[shopID+"/"+productID]; ok {
		cp := *level
		return &cp, nil
	}
	return &entity.StockLevel{ShopID: shopID, ProductID: productID}, nil
}

// GetForUpdate materializa la fila en 0 si el par nunca se rastreó, igual que
// el adaptador real: la fila debe existir para poder bloquearla.
func (r *StockLevelRepo) GetForUpdate(shopID, productID string) (*entity.StockLevel, error) {
	key := shopID + "/" + productID
	if _, ok := r.store.Levels[key]; !ok {
		r.store.Levels[key] = &entity.StockLevel{ShopID: shopID, ProductID: productID}
	}
	cp := *r.store.Levels[key]
	return &cp, nil
}

func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.store.Levels[level.ShopID+"/"+level.ProductID] = &cp
	return nil
}

func (r *StockLevelRepo) ListByShop(ctx context.Context, shopID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, level := range r.store.Levels {
		if level.ShopID == shopID {
			cp := *level
			if product, ok := r.store.Products[level.ProductID]; ok {
				cp.MinThreshold = product.MinThreshold
			}
			out = append(out, &cp)
		}
	}
	return out, nil
}

// LedgerRepo fake de LedgerRepository.
type LedgerRepo struct{ store *Store }

// NewLedgerRepo construye el fake.
func NewLedgerRepo(store *Store) *LedgerRepo { return &LedgerRepo{store: store} }

func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	cp := *entry
	r.store.Entries = append(r.store.Entries, &cp)
	return nil
}

func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	for _, e := range r.store.Entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *LedgerRepo) ListByShop(shopID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.store.Entries {
		if e.ShopID == shopID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LedgerRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.store.Entries {
		if e.ProductID == productID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// TransferRepo fake de TransferRepository.
type TransferRepo struct{ store *Store }

// NewTransferRepo construye el fake.
func NewTransferRepo(store *Store) *TransferRepo { return &TransferRepo{store: store} }

func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	for _, other := range r.store.Transfers {
		if other.TransferNumber == transfer.TransferNumber {
			return domain.ErrDuplicate
		}
	}
	for _, line := range transfer.Lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.TransferID = transfer.ID
	}
	r.store.Transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	transfer, ok := r.store.Transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(transfer), nil
}

func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *TransferRepo) Update(transfer *entity.Transfer) error {
	stored, ok := r.store.Transfers[transfer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := stored.Lines
	*stored = *cloneTransfer(transfer)
	stored.Lines = lines
	return nil
}

func (r *TransferRepo) UpdateLine(line *entity.TransferLine) error {
	for _, transfer := range r.store.Transfers {
		for _, stored := range transfer.Lines {
			if stored.ID == line.ID {
				cp := *line
				if line.QuantityShipped != nil {
					v := *line.QuantityShipped
					cp.QuantityShipped = &v
				}
				if line.QuantityReceived != nil {
					v := *line.QuantityReceived
					cp.QuantityReceived = &v
				}
				*stored = cp
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *TransferRepo) ListByShop(shopID string, status string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, transfer := range r.store.Transfers {
		if transfer.FromShopID != shopID && transfer.ToShopID != shopID {
			continue
		}
		if status != "" && transfer.Status != status {
			continue
		}
		out = append(out, cloneTransfer(transfer))
	}
	return out, nil
}

// SessionRepo fake de InventorySessionRepository.
type SessionRepo struct{ store *Store }

// NewSessionRepo construye el fake.
func NewSessionRepo(store *Store) *SessionRepo { return &SessionRepo{store: store} }

func (r *SessionRepo) Create(session *entity.InventorySession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	for _, other := range r.store.Sessions {
		if other.InventoryNumber == session.InventoryNumber {
			return domain.ErrDuplicate
		}
	}
	r.store.Sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *SessionRepo) GetByID(id string) (*entity.InventorySession, error) {
	session, ok := r.store.Sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(session), nil
}

func (r *SessionRepo) GetForUpdate(id string) (*entity.InventorySession, error) {
	return r.GetByID(id)
}

func (r *SessionRepo) Update(session *entity.InventorySession) error {
	stored, ok := r.store.Sessions[session.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := stored.Lines
	*stored = *cloneSession(session)
	stored.Lines = lines
	return nil
}

func (r *SessionRepo) CreateLines(lines []*entity.CountLine) error {
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		session, ok := r.store.Sessions[line.SessionID]
		if !ok {
			return domain.ErrNotFound
		}
		cp := *line
		session.Lines = append(session.Lines, &cp)
	}
	return nil
}

func (r *SessionRepo) UpdateLineCount(line *entity.CountLine) error {
	for _, session := range r.store.Sessions {
		for _, stored := range session.Lines {
			if stored.ID == line.ID {
				cp := *line
				if line.CountedQuantity != nil {
					v := *line.CountedQuantity
					cp.CountedQuantity = &v
				}
				*stored = cp
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *SessionRepo) ListByShop(shopID string, status string, limit, offset int) ([]*entity.InventorySession, error) {
	var out []*entity.InventorySession
	for _, session := range r.store.Sessions {
		if session.ShopID != shopID {
			continue
		}
		if status != "" && session.Status != status {
			continue
		}
		out = append(out, cloneSession(session))
	}
	return out, nil
}

// AdjustmentRepo fake de AdjustmentRepository.
type AdjustmentRepo struct{ store *Store }

// NewAdjustmentRepo construye el fake.
func NewAdjustmentRepo(store *Store) *AdjustmentRepo { return &AdjustmentRepo{store: store} }

func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	for _, other := range r.store.Adjustments {
		if other.AdjustmentNumber == adjustment.AdjustmentNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *adjustment
	r.store.Adjustments[adjustment.ID] = &cp
	return nil
}

func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	adjustment, ok := r.store.Adjustments[id]
	if !ok {
		return nil, nil
	}
	cp := *adjustment
	return &cp, nil
}

func (r *AdjustmentRepo) ListByShop(shopID string, limit, offset int) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	for _, adjustment := range r.store.Adjustments {
		if adjustment.ShopID == shopID {
			cp := *adjustment
			out = append(out, &cp)
		}
	}
	return out, nil
}

package billing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-ledger/internal/application/billing"
	"github.com/jhoicas/crm-ledger/internal/application/inventory"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los flujos de documentos
// ──────────────────────────────────────────────────────────────────────────────

const testOwner = "owner-1"

type memStockRepo struct {
	mu      sync.Mutex
	records map[string]*entity.StockRecord
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{records: make(map[string]*entity.StockRecord)}
}

func (r *memStockRepo) Get(_ context.Context, ownerID, itemID string) (*entity.StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[ownerID+"_"+itemID]; ok {
		cp := *rec
		return &cp, nil
	}
	return &entity.StockRecord{OwnerID: ownerID, ItemID: itemID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, ownerID, itemID string) (*entity.StockRecord, error) {
	return r.Get(ctx, ownerID, itemID)
}

func (r *memStockRepo) ApplyDelta(_ context.Context, rec *entity.StockRecord, delta decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := rec.OwnerID + "_" + rec.ItemID
	existing, ok := r.records[key]
	if !ok {
		existing = &entity.StockRecord{OwnerID: rec.OwnerID, ItemID: rec.ItemID, Quantity: decimal.Zero}
		r.records[key] = existing
	}
	existing.Quantity = existing.Quantity.Add(delta)
	existing.ItemName = rec.ItemName
	existing.Unit = rec.Unit
	existing.UpdatedAt = rec.UpdatedAt
	return existing.Quantity, nil
}

func (r *memStockRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockRecord
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

// quantity devuelve la cantidad actual, cero si no hay registro.
func (r *memStockRepo) quantity(t *testing.T, itemID string) decimal.Decimal {
	t.Helper()
	rec, err := r.Get(context.Background(), testOwner, itemID)
	require.NoError(t, err)
	return rec.Quantity
}

type memLogRepo struct {
	mu   sync.Mutex
	logs []*entity.InventoryLog
}

func (r *memLogRepo) Append(_ context.Context, log *entity.InventoryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *log
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *memLogRepo) ListByOwner(_ context.Context, ownerID, itemID string, _, _ int) ([]*entity.InventoryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InventoryLog
	for _, l := range r.logs {
		if l.OwnerID == ownerID && (itemID == "" || l.ItemID == itemID) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) ListByRef(_ context.Context, ownerID, refID string) ([]*entity.InventoryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InventoryLog
	for _, l := range r.logs {
		if l.OwnerID == ownerID && l.RefID == refID {
			out = append(out, l)
		}
	}
	return out, nil
}

type memItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

func newMemItemRepo() *memItemRepo { return &memItemRepo{items: make(map[string]*entity.Item)} }

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.OwnerID+"_"+item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[ownerID+"_"+id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, nil
}

func (r *memItemRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.Item, error) {
	return nil, nil
}

func (r *memItemRepo) Update(ctx context.Context, item *entity.Item) error { return r.Create(ctx, item) }

func (r *memItemRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, ownerID+"_"+id)
	return nil
}

type memCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.customers[c.OwnerID+"_"+c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[ownerID+"_"+id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCustomerRepo) ListByOwner(_ context.Context, _ string, _, _ int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r *memCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.Create(ctx, c)
}

func (r *memCustomerRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, ownerID+"_"+id)
	return nil
}

type memVendorRepo struct {
	mu      sync.Mutex
	vendors map[string]*entity.Vendor
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{vendors: make(map[string]*entity.Vendor)}
}

func (r *memVendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vendors[v.OwnerID+"_"+v.ID] = &cp
	return nil
}

func (r *memVendorRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vendors[ownerID+"_"+id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *memVendorRepo) ListByOwner(_ context.Context, _ string, _, _ int) ([]*entity.Vendor, error) {
	return nil, nil
}

func (r *memVendorRepo) Update(ctx context.Context, v *entity.Vendor) error { return r.Create(ctx, v) }

func (r *memVendorRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vendors, ownerID+"_"+id)
	return nil
}

type memInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.OwnerID+"_"+inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[ownerID+"_"+id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *memInvoiceRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.OwnerID == ownerID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.Create(ctx, inv)
}

func (r *memInvoiceRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, ownerID+"_"+id)
	return nil
}

type memBillRepo struct {
	mu    sync.Mutex
	bills map[string]*entity.Bill
}

func newMemBillRepo() *memBillRepo { return &memBillRepo{bills: make(map[string]*entity.Bill)} }

func (r *memBillRepo) Create(_ context.Context, b *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bills[b.OwnerID+"_"+b.ID] = &cp
	return nil
}

func (r *memBillRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bills[ownerID+"_"+id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *memBillRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bill
	for _, b := range r.bills {
		if b.OwnerID == ownerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBillRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bills, ownerID+"_"+id)
	return nil
}

// memDocTxRunner pasa los fakes directamente. Como commitSale verifica todas las líneas
// antes de ajustar cualquiera, la propiedad "sin ajuste parcial" se cumple incluso sin
// rollback real.
type memDocTxRunner struct {
	stockRepo   *memStockRepo
	logRepo     *memLogRepo
	invoiceRepo *memInvoiceRepo
	billRepo    *memBillRepo
}

func (t *memDocTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	return fn(t.stockRepo, t.logRepo)
}

func (t *memDocTxRunner) RunInvoice(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(t.stockRepo, t.logRepo, t.invoiceRepo)
}

func (t *memDocTxRunner) RunBill(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
	billRepo repository.BillRepository,
) error) error {
	return fn(t.stockRepo, t.logRepo, t.billRepo)
}

// env entorno de test completo: use cases reales sobre fakes en memoria.
type env struct {
	stockRepo    *memStockRepo
	logRepo      *memLogRepo
	itemRepo     *memItemRepo
	customerRepo *memCustomerRepo
	vendorRepo   *memVendorRepo
	invoiceRepo  *memInvoiceRepo
	billRepo     *memBillRepo
	adjuster     *inventory.AdjustmentService
	invoiceUC    *billing.InvoiceUseCase
	billUC       *billing.BillUseCase
}

func newEnv() *env {
	e := &env{
		stockRepo:    newMemStockRepo(),
		logRepo:      &memLogRepo{},
		itemRepo:     newMemItemRepo(),
		customerRepo: newMemCustomerRepo(),
		vendorRepo:   newMemVendorRepo(),
		invoiceRepo:  newMemInvoiceRepo(),
		billRepo:     newMemBillRepo(),
	}
	txRunner := &memDocTxRunner{
		stockRepo:   e.stockRepo,
		logRepo:     e.logRepo,
		invoiceRepo: e.invoiceRepo,
		billRepo:    e.billRepo,
	}
	e.adjuster = inventory.NewAdjustmentService(txRunner, e.stockRepo, e.logRepo, e.itemRepo)
	e.invoiceUC = billing.NewInvoiceUseCase(txRunner, e.adjuster, e.invoiceRepo, e.customerRepo, e.itemRepo)
	e.billUC = billing.NewBillUseCase(txRunner, e.adjuster, e.billRepo, e.vendorRepo, e.itemRepo)
	return e
}

// seedItem registra un artículo en el catálogo con stock inicial opcional.
func (e *env) seedItem(t *testing.T, id, name string, initialStock int64) {
	t.Helper()
	require.NoError(t, e.itemRepo.Create(context.Background(), &entity.Item{
		ID: id, OwnerID: testOwner, Name: name, Unit: "pcs",
	}))
	if initialStock != 0 {
		_, err := e.adjuster.Adjust(context.Background(), inventory.AdjustmentInput{
			OwnerID:  testOwner,
			ItemID:   id,
			ItemName: name,
			Unit:     "pcs",
			Change:   decimal.NewFromInt(initialStock),
			Reason:   entity.ReasonManualAdjustment,
		})
		require.NoError(t, err)
	}
}

func (e *env) seedCustomer(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, e.customerRepo.Create(context.Background(), &entity.Customer{
		ID: id, OwnerID: testOwner, Name: name,
	}))
}

func (e *env) seedVendor(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, e.vendorRepo.Create(context.Background(), &entity.Vendor{
		ID: id, OwnerID: testOwner, Name: name,
	}))
}

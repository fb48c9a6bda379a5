package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-ledger/internal/application/inventory"
	"github.com/jhoicas/crm-ledger/internal/domain"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOwner = "owner-1"
	testItem  = "item-1"
)

// memStockRepo ledger en memoria con incremento atómico bajo mutex, imitando el
// upsert aditivo del storage real.
type memStockRepo struct {
	mu      sync.Mutex
	records map[string]*entity.StockRecord
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{records: make(map[string]*entity.StockRecord)}
}

func stockKey(ownerID, itemID string) string { return ownerID + "_" + itemID }

func (r *memStockRepo) Get(_ context.Context, ownerID, itemID string) (*entity.StockRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[stockKey(ownerID, itemID)]; ok {
		cp := *rec
		return &cp, nil
	}
	// Registro cero implícito: nunca ajustado no es error.
	return &entity.StockRecord{OwnerID: ownerID, ItemID: itemID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, ownerID, itemID string) (*entity.StockRecord, error) {
	return r.Get(ctx, ownerID, itemID)
}

func (r *memStockRepo) ApplyDelta(_ context.Context, rec *entity.StockRecord, delta decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey(rec.OwnerID, rec.ItemID)
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

// memLogRepo log append-only en memoria.
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

// sumChanges suma los deltas del log para un (owner, item).
func (r *memLogRepo) sumChanges(ownerID, itemID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, l := range r.logs {
		if l.OwnerID == ownerID && l.ItemID == itemID {
			total = total.Add(l.Change)
		}
	}
	return total
}

// memItemRepo catálogo mínimo en memoria.
type memItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*entity.Item)}
}

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
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memItemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.Create(context.Background(), item)
}

func (r *memItemRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, ownerID+"_"+id)
	return nil
}

// memTxRunner pasa los fakes directamente; la atomicidad real la dan los mutex de
// cada fake.
type memTxRunner struct {
	stockRepo *memStockRepo
	logRepo   *memLogRepo
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	return fn(t.stockRepo, t.logRepo)
}

// newTestService arma el servicio con todos los fakes.
func newTestService() (*inventory.AdjustmentService, *memStockRepo, *memLogRepo, *memItemRepo) {
	stockRepo := newMemStockRepo()
	logRepo := &memLogRepo{}
	itemRepo := newMemItemRepo()
	txRunner := &memTxRunner{stockRepo: stockRepo, logRepo: logRepo}
	svc := inventory.NewAdjustmentService(txRunner, stockRepo, logRepo, itemRepo)
	return svc, stockRepo, logRepo, itemRepo
}

func adjust(t *testing.T, svc *inventory.AdjustmentService, change decimal.Decimal, reason, refID string) *inventory.AdjustmentResult {
	t.Helper()
	result, err := svc.Adjust(context.Background(), inventory.AdjustmentInput{
		OwnerID:  testOwner,
		ItemID:   testItem,
		ItemName: "Widget",
		Unit:     "pcs",
		Change:   change,
		Reason:   reason,
		RefID:    refID,
	})
	require.NoError(t, err)
	return result
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust
// ──────────────────────────────────────────────────────────────────────────────

// El primer ajuste crea el registro de forma perezosa partiendo de cero.
func TestAdjust_PrimerAjusteCreaRegistro(t *testing.T) {
	svc, _, logRepo, _ := newTestService()

	result := adjust(t, svc, decimal.NewFromInt(10), entity.ReasonManualAdjustment, "")
	assert.True(t, result.Quantity.Equal(decimal.NewFromInt(10)),
		"la cantidad resultante debe ser 10, fue %s", result.Quantity)

	logs, err := logRepo.ListByOwner(context.Background(), testOwner, testItem, 50, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1, "exactamente una fila de log por ajuste")
	assert.True(t, logs[0].Change.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.ReasonManualAdjustment, logs[0].Reason)
	assert.Equal(t, "Widget", logs[0].ItemName)
}

// Una serie de deltas con signo deja el ledger igual a la suma del log.
func TestAdjust_SumaDelLogIgualaLedger(t *testing.T) {
	svc, stockRepo, logRepo, _ := newTestService()

	deltas := []int64{10, -4, 24, -3, 3}
	for _, d := range deltas {
		adjust(t, svc, decimal.NewFromInt(d), entity.ReasonManualAdjustment, "")
	}

	rec, err := stockRepo.Get(context.Background(), testOwner, testItem)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(30)), "10-4+24-3+3 = 30, fue %s", rec.Quantity)
	assert.True(t, logRepo.sumChanges(testOwner, testItem).Equal(rec.Quantity),
		"la suma de cambios del log debe igualar la cantidad del ledger")
}

// Un delta negativo puede dejar la cantidad bajo cero: la primitiva no valida
// disponibilidad, eso es del flujo de venta.
func TestAdjust_PermiteNegativos(t *testing.T) {
	svc, _, _, _ := newTestService()

	result := adjust(t, svc, decimal.NewFromInt(-5), entity.ReasonManualAdjustment, "")
	assert.True(t, result.Quantity.Equal(decimal.NewFromInt(-5)))
}

// Delta cero: no-op permitido, sin escritura del ledger ni fila de log.
func TestAdjust_DeltaCeroEsNoOp(t *testing.T) {
	svc, _, logRepo, _ := newTestService()
	adjust(t, svc, decimal.NewFromInt(7), entity.ReasonManualAdjustment, "")

	result := adjust(t, svc, decimal.Zero, entity.ReasonManualAdjustment, "")
	assert.True(t, result.Quantity.Equal(decimal.NewFromInt(7)), "la cantidad no debe cambiar")

	logs, err := logRepo.ListByOwner(context.Background(), testOwner, testItem, 50, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "el delta cero no debe agregar fila de log")
}

// Cantidades fraccionales (kg) se acumulan exactas, sin drift binario.
func TestAdjust_DecimalesExactos(t *testing.T) {
	svc, _, _, _ := newTestService()

	adjust(t, svc, decimal.RequireFromString("0.1"), entity.ReasonManualAdjustment, "")
	adjust(t, svc, decimal.RequireFromString("0.2"), entity.ReasonManualAdjustment, "")
	result := adjust(t, svc, decimal.RequireFromString("0.3"), entity.ReasonManualAdjustment, "")

	assert.True(t, result.Quantity.Equal(decimal.RequireFromString("0.6")),
		"0.1+0.2+0.3 debe ser exactamente 0.6, fue %s", result.Quantity)
}

// Entradas inválidas → ErrInvalidInput.
func TestAdjust_ValidaEntrada(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input inventory.AdjustmentInput
	}{
		{"sin owner", inventory.AdjustmentInput{ItemID: testItem, Change: decimal.NewFromInt(1), Reason: "x"}},
		{"sin item", inventory.AdjustmentInput{OwnerID: testOwner, Change: decimal.NewFromInt(1), Reason: "x"}},
		{"sin razón", inventory.AdjustmentInput{OwnerID: testOwner, ItemID: testItem, Change: decimal.NewFromInt(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Adjust(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// RefID queda registrado en el log y es consultable por documento.
func TestAdjust_RefIDConsultable(t *testing.T) {
	svc, _, logRepo, _ := newTestService()

	adjust(t, svc, decimal.NewFromInt(-2), entity.ReasonSalesInvoice, "inv-99")
	adjust(t, svc, decimal.NewFromInt(5), entity.ReasonManualAdjustment, "")

	logs, err := logRepo.ListByRef(context.Background(), testOwner, "inv-99")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ReasonSalesInvoice, logs[0].Reason)
	assert.True(t, logs[0].Change.Equal(decimal.NewFromInt(-2)))
}

// N goroutines concurrentes de +1 terminan exactamente en N, sin updates perdidos.
func TestAdjust_ConcurrenciaSinPerdidas(t *testing.T) {
	for _, n := range []int{1, 10, 100} {
		svc, stockRepo, logRepo, _ := newTestService()

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Adjust(context.Background(), inventory.AdjustmentInput{
					OwnerID:  testOwner,
					ItemID:   testItem,
					ItemName: "Widget",
					Unit:     "pcs",
					Change:   decimal.NewFromInt(1),
					Reason:   entity.ReasonManualAdjustment,
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		rec, err := stockRepo.Get(context.Background(), testOwner, testItem)
		require.NoError(t, err)
		assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(int64(n))),
			"con %d ajustes de +1 la cantidad debe ser %d, fue %s", n, n, rec.Quantity)

		logs, err := logRepo.ListByOwner(context.Background(), testOwner, testItem, n+1, 0)
		require.NoError(t, err)
		assert.Len(t, logs, n, "debe haber una fila de log por ajuste")
	}
}

// Reversa exacta: aplicar el delta opuesto devuelve la cantidad original.
func TestAdjust_ReversaRestauraCantidad(t *testing.T) {
	svc, _, _, _ := newTestService()

	adjust(t, svc, decimal.NewFromInt(10), entity.ReasonManualAdjustment, "")
	adjust(t, svc, decimal.NewFromInt(-4), entity.ReasonSalesInvoice, "inv-1")
	result := adjust(t, svc, decimal.NewFromInt(4), entity.ReasonInvoiceReversal, "inv-1")

	assert.True(t, result.Quantity.Equal(decimal.NewFromInt(10)),
		"tras la reversa la cantidad debe volver a 10, fue %s", result.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AvailableStock
// ──────────────────────────────────────────────────────────────────────────────

// Un par (owner, item) jamás ajustado vale cero, no es error.
func TestAvailableStock_SinRegistroValeCero(t *testing.T) {
	svc, _, _, _ := newTestService()

	qty, err := svc.AvailableStock(context.Background(), testOwner, "nunca-ajustado")
	require.NoError(t, err)
	assert.True(t, qty.IsZero())
}

func TestAvailableStock_ReflejaAjustes(t *testing.T) {
	svc, _, _, _ := newTestService()
	adjust(t, svc, decimal.NewFromInt(15), entity.ReasonPurchaseBill, "bill-1")

	qty, err := svc.AvailableStock(context.Background(), testOwner, testItem)
	require.NoError(t, err)
	assert.True(t, qty.Equal(decimal.NewFromInt(15)))
}

// El stock de un owner no se ve desde otro owner.
func TestAvailableStock_AisladoPorOwner(t *testing.T) {
	svc, _, _, _ := newTestService()
	adjust(t, svc, decimal.NewFromInt(15), entity.ReasonManualAdjustment, "")

	qty, err := svc.AvailableStock(context.Background(), "otro-owner", testItem)
	require.NoError(t, err)
	assert.True(t, qty.IsZero(), "el stock de owner-1 no debe filtrarse a otro owner")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ManualAdjust
// ──────────────────────────────────────────────────────────────────────────────

func TestManualAdjust_ResuelveCatalogoYRazonPorDefecto(t *testing.T) {
	svc, _, logRepo, itemRepo := newTestService()
	require.NoError(t, itemRepo.Create(context.Background(), &entity.Item{
		ID: testItem, OwnerID: testOwner, Name: "Widget", Unit: "pcs",
	}))

	result, err := svc.ManualAdjust(context.Background(), testOwner, testItem, decimal.NewFromInt(3), "")
	require.NoError(t, err)
	assert.True(t, result.Quantity.Equal(decimal.NewFromInt(3)))

	logs, err := logRepo.ListByOwner(context.Background(), testOwner, testItem, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ReasonManualAdjustment, logs[0].Reason,
		"sin razón explícita se usa la razón por defecto")
	assert.Equal(t, "Widget", logs[0].ItemName, "nombre y unidad salen del catálogo")
}

func TestManualAdjust_RazonLibre(t *testing.T) {
	svc, _, logRepo, itemRepo := newTestService()
	require.NoError(t, itemRepo.Create(context.Background(), &entity.Item{
		ID: testItem, OwnerID: testOwner, Name: "Widget", Unit: "pcs",
	}))

	_, err := svc.ManualAdjust(context.Background(), testOwner, testItem, decimal.NewFromInt(-1), "Conteo físico")
	require.NoError(t, err)

	logs, err := logRepo.ListByOwner(context.Background(), testOwner, testItem, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Conteo físico", logs[0].Reason)
}

func TestManualAdjust_ItemInexistente(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ManualAdjust(context.Background(), testOwner, "no-existe", decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyInTx
// ──────────────────────────────────────────────────────────────────────────────

// ApplyInTx usa los repos del caller y comparte el mismo timestamp entre ledger y log.
func TestApplyInTx_UsaReposDelCaller(t *testing.T) {
	svc, stockRepo, logRepo, _ := newTestService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	qty, err := svc.ApplyInTx(context.Background(), stockRepo, logRepo, inventory.AdjustmentInput{
		OwnerID:  testOwner,
		ItemID:   testItem,
		ItemName: "Widget",
		Unit:     "pcs",
		Change:   decimal.NewFromInt(8),
		Reason:   entity.ReasonPurchaseBill,
		RefID:    "bill-7",
	}, now)
	require.NoError(t, err)
	assert.True(t, qty.Equal(decimal.NewFromInt(8)))

	logs, err := logRepo.ListByRef(context.Background(), testOwner, "bill-7")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, now, logs[0].CreatedAt)
}

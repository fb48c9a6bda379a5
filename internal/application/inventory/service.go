package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-ledger/internal/domain"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// AdjustmentService es el único punto que muta el ledger de stock y el log de
// inventario. Todo flujo de documentos (factura, compra, ajuste manual) pasa por aquí;
// nadie más escribe en esas colecciones.
type AdjustmentService struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository
	logRepo   repository.InventoryLogRepository
	itemRepo  repository.ItemRepository
}

// NewAdjustmentService construye el servicio. stockRepo y logRepo van atados al pool
// (lecturas); las escrituras corren siempre dentro de txRunner.
func NewAdjustmentService(
	txRunner TxRunner,
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
	itemRepo repository.ItemRepository,
) *AdjustmentService {
	return &AdjustmentService{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		logRepo:   logRepo,
		itemRepo:  itemRepo,
	}
}

// AdjustmentInput entrada canónica de un ajuste: un delta con signo sobre un
// (owner, item), con razón auditable y referencia opcional al documento origen.
// Una factura de N líneas produce N ajustes, nunca uno por documento.
type AdjustmentInput struct {
	OwnerID  string
	ItemID   string
	ItemName string
	Unit     string
	Change   decimal.Decimal
	Reason   string
	RefID    string
}

// AdjustmentResult resultado de un ajuste aplicado.
type AdjustmentResult struct {
	Quantity decimal.Decimal // cantidad resultante en el ledger
}

// Adjust aplica el delta al StockRecord con incremento atómico y agrega exactamente una
// fila al log, en una sola transacción. No valida no-negatividad: la primitiva es
// uniforme para entradas, salidas y reversas; el chequeo de stock es responsabilidad
// del flujo de venta (ver billing.InvoiceUseCase).
func (s *AdjustmentService) Adjust(ctx context.Context, input AdjustmentInput) (*AdjustmentResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Change.IsZero() {
		// Delta cero: no-op permitido, sin escritura ni fila de log.
		qty, err := s.AvailableStock(ctx, input.OwnerID, input.ItemID)
		if err != nil {
			return nil, err
		}
		return &AdjustmentResult{Quantity: qty}, nil
	}

	var result AdjustmentResult
	err := s.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		qty, err := applyAdjustment(ctx, stockRepo, logRepo, input, time.Now())
		if err != nil {
			return err
		}
		result.Quantity = qty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ApplyInTx aplica un ajuste usando repositorios proporcionados por el caller (misma
// transacción del documento). Lo usan los flujos de factura y compra para que documento,
// ledger y log se confirmen juntos.
func (s *AdjustmentService) ApplyInTx(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
	input AdjustmentInput,
	now time.Time,
) (decimal.Decimal, error) {
	if err := validateInput(input); err != nil {
		return decimal.Zero, err
	}
	if input.Change.IsZero() {
		rec, err := stockRepo.Get(ctx, input.OwnerID, input.ItemID)
		if err != nil {
			return decimal.Zero, err
		}
		return rec.Quantity, nil
	}
	return applyAdjustment(ctx, stockRepo, logRepo, input, now)
}

// AvailableStock responde "cuánto hay de este artículo para este owner".
// Un par nunca ajustado vale cero, no es error. Lectura simple contra el pool:
// no reserva ni bloquea stock.
func (s *AdjustmentService) AvailableStock(ctx context.Context, ownerID, itemID string) (decimal.Decimal, error) {
	if ownerID == "" || itemID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	rec, err := s.stockRepo.Get(ctx, ownerID, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.Quantity, nil
}

// ManualAdjust registra un ajuste de operador: delta con signo y razón libre, sin
// chequeo de disponibilidad aunque sea negativo. Resuelve nombre y unidad desde el
// catálogo para las copias desnormalizadas.
func (s *AdjustmentService) ManualAdjust(ctx context.Context, ownerID, itemID string, change decimal.Decimal, reason string) (*AdjustmentResult, error) {
	item, err := s.itemRepo.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if reason == "" {
		reason = entity.ReasonManualAdjustment
	}
	return s.Adjust(ctx, AdjustmentInput{
		OwnerID:  ownerID,
		ItemID:   item.ID,
		ItemName: item.Name,
		Unit:     item.Unit,
		Change:   change,
		Reason:   reason,
	})
}

// ListStock lista el stock actual del owner (página de inventario).
func (s *AdjustmentService) ListStock(ctx context.Context, ownerID string, limit, offset int) ([]*entity.StockRecord, error) {
	return s.stockRepo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListLogs lista el historial de ajustes del owner; itemID vacío = todos los artículos.
func (s *AdjustmentService) ListLogs(ctx context.Context, ownerID, itemID string, limit, offset int) ([]*entity.InventoryLog, error) {
	return s.logRepo.ListByOwner(ctx, ownerID, itemID, limit, offset)
}

func validateInput(input AdjustmentInput) error {
	if input.OwnerID == "" || input.ItemID == "" {
		return domain.ErrInvalidInput
	}
	if input.Reason == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// applyAdjustment: incremento atómico del ledger y append del log, en ese orden.
// Corre siempre dentro de una transacción; un fallo en cualquiera de las dos escrituras
// revierte ambas.
func applyAdjustment(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
	input AdjustmentInput,
	now time.Time,
) (decimal.Decimal, error) {
	rec := &entity.StockRecord{
		OwnerID:   input.OwnerID,
		ItemID:    input.ItemID,
		ItemName:  input.ItemName,
		Unit:      input.Unit,
		UpdatedAt: now,
	}
	newQty, err := stockRepo.ApplyDelta(ctx, rec, input.Change)
	if err != nil {
		return decimal.Zero, err
	}
	log := &entity.InventoryLog{
		ID:        uuid.New().String(),
		OwnerID:   input.OwnerID,
		ItemID:    input.ItemID,
		ItemName:  input.ItemName,
		Change:    input.Change,
		Reason:    input.Reason,
		RefID:     input.RefID,
		CreatedAt: now,
	}
	if err := logRepo.Append(ctx, log); err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-ledger/internal/application/dto"
	"github.com/jhoicas/crm-ledger/internal/application/inventory"
	"github.com/jhoicas/crm-ledger/internal/domain"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// InvoiceUseCase maneja el ciclo de vida de facturas de venta y su contrato con el
// inventario: un Draft no toca stock; finalizar (Saved) verifica disponibilidad de
// TODAS las líneas bajo bloqueo de fila y descuenta en la misma transacción; eliminar
// una factura finalizada restaura el stock línea por línea.
type InvoiceUseCase struct {
	txRunner     DocumentTxRunner
	adjuster     StockAdjuster
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner DocumentTxRunner,
	adjuster StockAdjuster,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		adjuster:     adjuster,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
	}
}

// Create crea una factura en Draft o Saved. Saved descuenta inventario.
func (uc *InvoiceUseCase) Create(ctx context.Context, ownerID string, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.buildInvoice(ctx, ownerID, uuid.New().String(), in)
	if err != nil {
		return nil, err
	}
	invoice.CreatedAt = invoice.UpdatedAt

	err = uc.txRunner.RunInvoice(ctx, func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		if invoice.Status == entity.InvoiceStatusSaved {
			return uc.commitSale(ctx, stockRepo, logRepo, invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Update actualiza una factura. Solo los borradores son editables; una factura Saved es
// inmutable (volver a guardarla duplicaría el descuento de stock). Pasar un borrador a
// Saved dispara el descuento.
func (uc *InvoiceUseCase) Update(ctx context.Context, ownerID, id string, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	existing, err := uc.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if existing.Status == entity.InvoiceStatusSaved {
		return nil, domain.ErrDocumentFinalized
	}

	invoice, err := uc.buildInvoice(ctx, ownerID, id, in)
	if err != nil {
		return nil, err
	}
	invoice.CreatedAt = existing.CreatedAt

	err = uc.txRunner.RunInvoice(ctx, func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}
		if invoice.Status == entity.InvoiceStatusSaved {
			return uc.commitSale(ctx, stockRepo, logRepo, invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Delete elimina la factura. Si estaba finalizada, restaura el stock de cada línea
// original (reversa) en la misma transacción que borra el documento.
func (uc *InvoiceUseCase) Delete(ctx context.Context, ownerID, id string) error {
	invoice, err := uc.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.RunInvoice(ctx, func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if invoice.Status == entity.InvoiceStatusSaved {
			now := time.Now()
			for _, line := range invoice.Lines {
				_, err := uc.adjuster.ApplyInTx(ctx, stockRepo, logRepo, inventory.AdjustmentInput{
					OwnerID:  ownerID,
					ItemID:   line.ItemID,
					ItemName: line.ItemName,
					Unit:     line.Unit,
					Change:   line.Qty, // restaura
					Reason:   entity.ReasonInvoiceReversal,
					RefID:    invoice.ID,
				}, now)
				if err != nil {
					return err
				}
			}
		}
		return invoiceRepo.Delete(ctx, ownerID, id)
	})
}

// GetByID obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(invoice), nil
}

// List lista las facturas del owner.
func (uc *InvoiceUseCase) List(ctx context.Context, ownerID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// commitSale ejecuta el contrato de venta dentro de la tx: bloquea el stock de todas
// las líneas (FOR UPDATE) y verifica disponibilidad ANTES de ajustar cualquiera; si una
// sola línea no alcanza, se aborta el commit completo sin ajuste parcial. Solo después
// descuenta línea por línea con razón "Sales Invoice" y refID = id de la factura.
func (uc *InvoiceUseCase) commitSale(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	logRepo repository.InventoryLogRepository,
	invoice *entity.Invoice,
) error {
	for _, line := range invoice.Lines {
		rec, err := stockRepo.GetForUpdate(ctx, invoice.OwnerID, line.ItemID)
		if err != nil {
			return err
		}
		if rec.Quantity.LessThan(line.Qty) {
			return domain.ErrInsufficientStock
		}
	}
	now := time.Now()
	for _, line := range invoice.Lines {
		_, err := uc.adjuster.ApplyInTx(ctx, stockRepo, logRepo, inventory.AdjustmentInput{
			OwnerID:  invoice.OwnerID,
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			Unit:     line.Unit,
			Change:   line.Qty.Neg(),
			Reason:   entity.ReasonSalesInvoice,
			RefID:    invoice.ID,
		}, now)
		if err != nil {
			return err
		}
	}
	return nil
}

// buildInvoice valida el request, resuelve las líneas contra el catálogo del owner y
// arma la entidad con totales calculados.
func (uc *InvoiceUseCase) buildInvoice(ctx context.Context, ownerID, id string, in dto.SaveInvoiceRequest) (*entity.Invoice, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != entity.InvoiceStatusDraft && in.Status != entity.InvoiceStatusSaved {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(ctx, ownerID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.Date != "" {
		d, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = d
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:         id,
		OwnerID:    ownerID,
		CustomerID: in.CustomerID,
		InvoiceNo:  in.InvoiceNo,
		Date:       date,
		Status:     in.Status,
		Total:      decimal.Zero,
		UpdatedAt:  now,
	}
	lines, total, err := uc.buildLines(ctx, ownerID, id, in.Lines)
	if err != nil {
		return nil, err
	}
	invoice.Lines = lines
	invoice.Total = total
	return invoice, nil
}

func (uc *InvoiceUseCase) buildLines(ctx context.Context, ownerID, invoiceID string, in []dto.DocumentLineRequest) ([]entity.InvoiceLine, decimal.Decimal, error) {
	lines := make([]entity.InvoiceLine, 0, len(in))
	total := decimal.Zero
	for _, req := range in {
		if req.ItemID == "" || !req.Qty.GreaterThan(decimal.Zero) || req.Rate.LessThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(ctx, ownerID, req.ItemID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if item == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		amount := req.Qty.Mul(req.Rate)
		lines = append(lines, entity.InvoiceLine{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Unit:      item.Unit,
			Qty:       req.Qty,
			Rate:      req.Rate,
			Amount:    amount,
		})
		total = total.Add(amount)
	}
	return lines, total, nil
}

func toInvoiceResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	lines := make([]dto.DocumentLineResponse, 0, len(invoice.Lines))
	for _, l := range invoice.Lines {
		lines = append(lines, dto.DocumentLineResponse{
			ItemID:   l.ItemID,
			ItemName: l.ItemName,
			Unit:     l.Unit,
			Qty:      l.Qty,
			Rate:     l.Rate,
			Amount:   l.Amount,
		})
	}
	return &dto.InvoiceResponse{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		InvoiceNo:  invoice.InvoiceNo,
		Date:       invoice.Date,
		Status:     invoice.Status,
		Total:      invoice.Total,
		Lines:      lines,
		CreatedAt:  invoice.CreatedAt,
		UpdatedAt:  invoice.UpdatedAt,
	}
}

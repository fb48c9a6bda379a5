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

// BillUseCase maneja compras a proveedor. Una compra suma inventario al crearse
// ("Purchase Bill", sin chequeo de disponibilidad: las compras siempre proceden) y al
// eliminarse revierte simétricamente ("Bill Deleted (Stock Reversal)").
type BillUseCase struct {
	txRunner   DocumentTxRunner
	adjuster   StockAdjuster
	billRepo   repository.BillRepository
	vendorRepo repository.VendorRepository
	itemRepo   repository.ItemRepository
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(
	txRunner DocumentTxRunner,
	adjuster StockAdjuster,
	billRepo repository.BillRepository,
	vendorRepo repository.VendorRepository,
	itemRepo repository.ItemRepository,
) *BillUseCase {
	return &BillUseCase{
		txRunner:   txRunner,
		adjuster:   adjuster,
		billRepo:   billRepo,
		vendorRepo: vendorRepo,
		itemRepo:   itemRepo,
	}
}

// Create registra la compra y suma el stock de cada línea en una sola transacción.
func (uc *BillUseCase) Create(ctx context.Context, ownerID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if in.VendorID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(ctx, ownerID, in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
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
	bill := &entity.Bill{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		VendorID:  in.VendorID,
		BillNo:    in.BillNo,
		Date:      date,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, req := range in.Lines {
		if req.ItemID == "" || !req.Qty.GreaterThan(decimal.Zero) || req.Rate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(ctx, ownerID, req.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		amount := req.Qty.Mul(req.Rate)
		bill.Lines = append(bill.Lines, entity.BillLine{
			ID:       uuid.New().String(),
			BillID:   bill.ID,
			ItemID:   item.ID,
			ItemName: item.Name,
			Unit:     item.Unit,
			Qty:      req.Qty,
			Rate:     req.Rate,
			Amount:   amount,
		})
		bill.Total = bill.Total.Add(amount)
	}

	err = uc.txRunner.RunBill(ctx, func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		billRepo repository.BillRepository,
	) error {
		if err := billRepo.Create(ctx, bill); err != nil {
			return err
		}
		for _, line := range bill.Lines {
			_, err := uc.adjuster.ApplyInTx(ctx, stockRepo, logRepo, inventory.AdjustmentInput{
				OwnerID:  ownerID,
				ItemID:   line.ItemID,
				ItemName: line.ItemName,
				Unit:     line.Unit,
				Change:   line.Qty,
				Reason:   entity.ReasonPurchaseBill,
				RefID:    bill.ID,
			}, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// Delete elimina la compra y descuenta el stock que había sumado, línea por línea, en
// la misma transacción. Sin chequeo de disponibilidad: es una reversa, no una venta,
// y puede dejar cantidades negativas transitorias que el historial documenta.
func (uc *BillUseCase) Delete(ctx context.Context, ownerID, id string) error {
	bill, err := uc.billRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.RunBill(ctx, func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		billRepo repository.BillRepository,
	) error {
		now := time.Now()
		for _, line := range bill.Lines {
			_, err := uc.adjuster.ApplyInTx(ctx, stockRepo, logRepo, inventory.AdjustmentInput{
				OwnerID:  ownerID,
				ItemID:   line.ItemID,
				ItemName: line.ItemName,
				Unit:     line.Unit,
				Change:   line.Qty.Neg(),
				Reason:   entity.ReasonBillReversal,
				RefID:    bill.ID,
			}, now)
			if err != nil {
				return err
			}
		}
		return billRepo.Delete(ctx, ownerID, id)
	})
}

// GetByID obtiene una compra con sus líneas.
func (uc *BillUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return toBillResponse(bill), nil
}

// List lista las compras del owner.
func (uc *BillUseCase) List(ctx context.Context, ownerID string, limit, offset int) ([]*dto.BillResponse, error) {
	bills, err := uc.billRepo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b))
	}
	return out, nil
}

func toBillResponse(bill *entity.Bill) *dto.BillResponse {
	lines := make([]dto.DocumentLineResponse, 0, len(bill.Lines))
	for _, l := range bill.Lines {
		lines = append(lines, dto.DocumentLineResponse{
			ItemID:   l.ItemID,
			ItemName: l.ItemName,
			Unit:     l.Unit,
			Qty:      l.Qty,
			Rate:     l.Rate,
			Amount:   l.Amount,
		})
	}
	return &dto.BillResponse{
		ID:        bill.ID,
		VendorID:  bill.VendorID,
		BillNo:    bill.BillNo,
		Date:      bill.Date,
		Total:     bill.Total,
		Lines:     lines,
		CreatedAt: bill.CreatedAt,
		UpdatedAt: bill.UpdatedAt,
	}
}

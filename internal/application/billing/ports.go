package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-ledger/internal/application/inventory"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// DocumentTxRunner abre transacciones con los repositorios que necesita cada flujo de
// documento. Documento, ledger y log se confirman juntos o no se confirma nada.
type DocumentTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error

	RunBill(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		billRepo repository.BillRepository,
	) error) error
}

// StockAdjuster es lo que billing necesita del motor de inventario: aplicar un ajuste
// dentro de la transacción del caller. Implementado por inventory.AdjustmentService.
type StockAdjuster interface {
	ApplyInTx(
		ctx context.Context,
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
		input inventory.AdjustmentInput,
		now time.Time,
	) (decimal.Decimal, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. El incremento del ledger y el append del log viajan juntos: o se
// confirman ambos o no queda ningún efecto parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		logRepo repository.InventoryLogRepository,
	) error) error
}

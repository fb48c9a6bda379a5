package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRequest body para POST /api/inventory/adjustments (ajuste manual).
// Change es un delta con signo; Reason es texto libre (default "Manual Adjustment").
type AdjustmentRequest struct {
	ItemID string          `json:"item_id"`
	Change decimal.Decimal `json:"change"`
	Reason string          `json:"reason,omitempty"`
}

// AdjustmentResponse resultado de un ajuste.
type AdjustmentResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StockResponse stock actual de un artículo.
type StockResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryLogResponse un evento del historial de inventario.
type InventoryLogResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Change    decimal.Decimal `json:"change"`
	Reason    string          `json:"reason"`
	RefID     string          `json:"ref_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

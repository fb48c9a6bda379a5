package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-ledger/internal/application/dto"
	"github.com/jhoicas/crm-ledger/internal/domain"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// La compra suma el stock de cada línea, sin chequeo de disponibilidad.
func TestBillCreate_SumaStockPorLinea(t *testing.T) {
	e := newEnv()
	e.seedVendor(t, "vend-1", "Proveedor SA")
	e.seedItem(t, "item-1", "Widget", 0)
	e.seedItem(t, "item-2", "Gadget", 3)

	bill, err := e.billUC.Create(context.Background(), testOwner, dto.CreateBillRequest{
		VendorID: "vend-1",
		BillNo:   "B-001",
		Lines: []dto.DocumentLineRequest{
			line("item-1", 20, 60),
			line("item-2", 5, 40),
		},
	})
	require.NoError(t, err)
	assert.True(t, bill.Total.Equal(decimal.NewFromInt(1400)), "20*60 + 5*40 = 1400")

	assert.True(t, e.stockRepo.quantity(t, "item-1").Equal(decimal.NewFromInt(20)))
	assert.True(t, e.stockRepo.quantity(t, "item-2").Equal(decimal.NewFromInt(8)))

	logs, err := e.logRepo.ListByRef(context.Background(), testOwner, bill.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2, "una fila de log por línea")
	for _, l := range logs {
		assert.Equal(t, entity.ReasonPurchaseBill, l.Reason)
		assert.True(t, l.Change.IsPositive(), "las compras suman stock")
	}
}

// La primera compra de un artículo nunca ajustado crea el registro desde cero.
func TestBillCreate_CreaRegistroInexistente(t *testing.T) {
	e := newEnv()
	e.seedVendor(t, "vend-1", "Proveedor SA")
	e.seedItem(t, "item-1", "Widget", 0)

	_, err := e.billUC.Create(context.Background(), testOwner, dto.CreateBillRequest{
		VendorID: "vend-1",
		Lines:    []dto.DocumentLineRequest{line("item-1", 7, 60)},
	})
	require.NoError(t, err)
	assert.True(t, e.stockRepo.quantity(t, "item-1").Equal(decimal.NewFromInt(7)))
}

func TestBillCreate_Validaciones(t *testing.T) {
	e := newEnv()
	e.seedVendor(t, "vend-1", "Proveedor SA")
	e.seedItem(t, "item-1", "Widget", 0)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateBillRequest
		want error
	}{
		{"sin proveedor", dto.CreateBillRequest{
			Lines: []dto.DocumentLineRequest{line("item-1", 1, 1)}}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateBillRequest{VendorID: "vend-1"}, domain.ErrInvalidInput},
		{"qty negativa", dto.CreateBillRequest{VendorID: "vend-1",
			Lines: []dto.DocumentLineRequest{line("item-1", -3, 1)}}, domain.ErrInvalidInput},
		{"proveedor inexistente", dto.CreateBillRequest{VendorID: "no-existe",
			Lines: []dto.DocumentLineRequest{line("item-1", 1, 1)}}, domain.ErrNotFound},
		{"artículo inexistente", dto.CreateBillRequest{VendorID: "vend-1",
			Lines: []dto.DocumentLineRequest{line("no-existe", 1, 1)}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.billUC.Create(ctx, testOwner, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar la compra revierte el stock que había sumado, simétricamente.
func TestBillDelete_RevierteStock(t *testing.T) {
	e := newEnv()
	e.seedVendor(t, "vend-1", "Proveedor SA")
	e.seedItem(t, "item-1", "Widget", 5)

	bill, err := e.billUC.Create(context.Background(), testOwner, dto.CreateBillRequest{
		VendorID: "vend-1",
		Lines:    []dto.DocumentLineRequest{line("item-1", 20, 60)},
	})
	require.NoError(t, err)
	require.True(t, e.stockRepo.quantity(t, "item-1").Equal(decimal.NewFromInt(25)))

	require.NoError(t, e.billUC.Delete(context.Background(), testOwner, bill.ID))
	assert.True(t, e.stockRepo.quantity(t, "item-1").Equal(decimal.NewFromInt(5)),
		"la eliminación debe revertir exactamente lo sumado")

	logs, err := e.logRepo.ListByRef(context.Background(), testOwner, bill.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2, "compra + reversa")
	assert.Equal(t, entity.ReasonBillReversal, logs[1].Reason)
	assert.True(t, logs[1].Change.Equal(decimal.NewFromInt(-20)))

	gone, err := e.billRepo.GetByID(context.Background(), testOwner, bill.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// La reversa de compra no chequea disponibilidad: puede dejar el stock negativo si ya
// se vendió parte de lo comprado. El historial documenta la inconsistencia.
func TestBillDelete_PuedeDejarNegativo(t *testing.T) {
	e := newEnv()
	e.seedVendor(t, "vend-1", "Proveedor SA")
	e.seedCustomer(t, "cust-1", "ACME")
	e.seedItem(t, "item-1", "Widget", 0)
	ctx := context.Background()

	bill, err := e.billUC.Create(ctx, testOwner, dto.CreateBillRequest{
		VendorID: "vend-1",
		Lines:    []dto.DocumentLineRequest{line("item-1", 10, 60)},
	})
	require.NoError(t, err)

	// Se venden 6 de las 10 compradas
	_, err = e.invoiceUC.Create(ctx, testOwner, dto.SaveInvoiceRequest{
		CustomerID: "cust-1",
		Status:     entity.InvoiceStatusSaved,
		Lines:      []dto.DocumentLineRequest{line("item-1", 6, 100)},
	})
	require.NoError(t, err)
	require.True(t, e.stockRepo.quantity(t, "item-1").Equal(decimal.NewFromInt(4)))

	require.NoError(t, e.billUC.Delete(ctx, testOwner, bill.ID))
	assert.True(t, e.stockRepo.quantity(t, "item-1").Equal(decimal.NewFromInt(-6)),
		"4 - 10 = -6: la reversa procede aunque deje negativo")
}

func TestBillDelete_NoExiste(t *testing.T) {
	e := newEnv()
	err := e.billUC.Delete(context.Background(), testOwner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

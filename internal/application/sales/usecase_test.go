package sales_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/application/dto"
	appinv "github.com/jhoicas/Retail-api/internal/application/inventory"
	appsales "github.com/jhoicas/Retail-api/internal/application/sales"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	salesdom "github.com/jhoicas/Retail-api/internal/domain/sales"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/jhoicas/Retail-api/internal/infrastructure/memory"
)

const (
	tenantA = tenant.ID("tenant-a")
	tenantB = tenant.ID("tenant-b")
	userID  = "user-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	products *usecase.ProductUseCase
	kardex   *appinv.KardexUseCase
	sales    *appsales.UseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	tx, repos := store.TxRunner(), store.Repos()
	return &fixture{
		store:    store,
		products: usecase.NewProductUseCase(tx, repos),
		kardex:   appinv.NewKardexUseCase(tx, repos, nil),
		sales:    appsales.NewUseCase(tx, repos),
	}
}

func (f *fixture) product(t *testing.T, tid tenant.ID, code, price, stock string) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), tid, userID, dto.CreateProductRequest{
		Code:         code,
		Name:         "Producto " + code,
		Price:        d(price),
		InitialStock: d(stock),
		MinStock:     d("5"),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, tid tenant.ID, id string) decimal.Decimal {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), tid, id)
	require.NoError(t, err)
	return p.Stock
}

func cashSale(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{Items: items, PaymentMethod: "EFECTIVO"}
}

func item(productID, qty string) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Quantity: d(qty)}
}

func TestCreate_DescuentaStockYRegistraSalida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")

	sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "3")))
	require.NoError(t, err)

	assert.True(t, d("30.00").Equal(sale.Subtotal))
	assert.True(t, d("5.40").Equal(sale.Tax))
	assert.True(t, d("35.40").Equal(sale.Total))
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, entity.DocumentBoleta, sale.DocumentType)
	assert.True(t, strings.HasPrefix(sale.Number, "V"), sale.Number)
	assert.True(t, strings.HasSuffix(sale.Number, "000001"), sale.Number)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "P1", sale.Items[0].ProductCode)

	assert.True(t, d("7").Equal(f.stock(t, tenantA, p.ID)))

	movs := f.store.Movements(tenantA)
	require.Len(t, movs, 2, "stock inicial + salida")
	last := movs[1]
	assert.Equal(t, entity.MovementSalida, last.Type)
	assert.True(t, d("-3").Equal(last.Quantity))
	assert.True(t, d("10").Equal(last.PreviousStock))
	assert.True(t, d("7").Equal(last.NewStock))
	assert.Equal(t, sale.Number, last.Reference)
	assert.Equal(t, entity.ReasonSale, last.Reason)
}

func TestCreate_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	_, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "3")))
	require.NoError(t, err)
	before := len(f.store.Movements(tenantA))

	_, err = f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "8")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, p.ID, ise.ProductID)
	assert.True(t, d("8").Equal(ise.Requested))
	assert.True(t, d("7").Equal(ise.Available))

	assert.True(t, d("7").Equal(f.stock(t, tenantA, p.ID)))
	assert.Len(t, f.store.Movements(tenantA), before)
	list, err := f.sales.List(ctx, tenantA, dto.SaleFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

func TestCreate_TodoONada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.product(t, tenantA, "P1", "10.00", "10")
	p2 := f.product(t, tenantA, "P2", "5.00", "1")

	_, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p1.ID, "2"), item(p2.ID, "2")))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, d("10").Equal(f.stock(t, tenantA, p1.ID)))
	assert.True(t, d("1").Equal(f.stock(t, tenantA, p2.ID)))
	assert.Len(t, f.store.Movements(tenantA), 2)
	list, err := f.sales.List(ctx, tenantA, dto.SaleFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// Un fallo en la segunda fila de kardex revierte la venta, el stock del primer ítem
// y el contador de numeración.
func TestCreate_FalloAMitadDeTransaccion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.product(t, tenantA, "P1", "10.00", "10")
	p2 := f.product(t, tenantA, "P2", "5.00", "10")

	calls := 0
	f.store.Fault = func(op string) error {
		if op != "movements.create" {
			return nil
		}
		calls++
		if calls == 2 {
			return fmt.Errorf("disco lleno")
		}
		return nil
	}
	_, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p1.ID, "2"), item(p2.ID, "3")))
	require.EqualError(t, err, "disco lleno")
	f.store.Fault = nil

	assert.True(t, d("10").Equal(f.stock(t, tenantA, p1.ID)))
	assert.True(t, d("10").Equal(f.stock(t, tenantA, p2.ID)))
	assert.Len(t, f.store.Movements(tenantA), 2)

	sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p1.ID, "1")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sale.Number, "000001"), "el número fallido no se consume: %s", sale.Number)
}

func TestCreate_TotalesConCantidadesFraccionarias(t *testing.T) {
	f := newFixture()
	p := f.product(t, tenantA, "P1", "1.05", "1000")
	ctx := context.Background()

	for q := int64(1); q <= 2000; q += 7 {
		qty := decimal.New(q, -3)
		sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, qty.String())))
		require.NoError(t, err, "qty=%s", qty)

		base := sale.Subtotal.Sub(sale.Discount)
		require.True(t, base.Mul(salesdom.TaxRate).Round(2).Equal(sale.Tax),
			"qty=%s subtotal=%s tax=%s", qty, sale.Subtotal, sale.Tax)
		require.True(t, base.Add(sale.Tax).Equal(sale.Total),
			"qty=%s subtotal=%s tax=%s total=%s", qty, sale.Subtotal, sale.Tax, sale.Total)
	}

	_, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "0.0015")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "más de 3 decimales se rechaza, no se redondea")
}

func TestCreate_AgregaCantidadesDelMismoProducto(t *testing.T) {
	f := newFixture()
	p := f.product(t, tenantA, "P1", "10.00", "10")

	_, err := f.sales.Create(context.Background(), tenantA, userID, cashSale(item(p.ID, "6"), item(p.ID, "5")))
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.True(t, d("11").Equal(ise.Requested))
	assert.True(t, d("10").Equal(f.stock(t, tenantA, p.ID)))
}

func TestCreate_PrecioExplicitoYVuelto(t *testing.T) {
	f := newFixture()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	price, paid := d("20.00"), d("50.00")

	sale, err := f.sales.Create(context.Background(), tenantA, userID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: p.ID, Quantity: d("2"), UnitPrice: &price, Discount: d("5.00")}},
		PaymentMethod: "TARJETA",
		AmountPaid:    &paid,
		DocumentType:  entity.DocumentNotaVenta,
	})
	require.NoError(t, err)
	// base 35.00, IGV 6.30
	assert.True(t, d("41.30").Equal(sale.Total), sale.Total.String())
	assert.True(t, d("8.70").Equal(sale.Change), sale.Change.String())
	assert.True(t, strings.HasPrefix(sale.Number, "NV"), sale.Number)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	missing := "no-existe"

	cases := map[string]dto.CreateSaleRequest{
		"sin ítems":       {PaymentMethod: "EFECTIVO"},
		"método inválido": {Items: []dto.SaleItemRequest{item(p.ID, "1")}, PaymentMethod: "CHEQUE"},
		"cantidad cero":   cashSale(item(p.ID, "0")),
		"comprobante":     {Items: []dto.SaleItemRequest{item(p.ID, "1")}, PaymentMethod: "EFECTIVO", DocumentType: "TICKET"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.sales.Create(ctx, tenantA, userID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := f.sales.Create(ctx, tenantA, userID, dto.CreateSaleRequest{
		ClientID: &missing, Items: []dto.SaleItemRequest{item(p.ID, "1")}, PaymentMethod: "EFECTIVO",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.sales.Create(ctx, "", userID, cashSale(item(p.ID, "1")))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCancel_DevuelveStockUnaSolaVez(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "3")))
	require.NoError(t, err)

	// movimiento ajeno entre la venta y la anulación
	_, err = f.kardex.RegisterMovement(ctx, tenantA, userID, dto.RegisterMovementRequest{
		ProductID: p.ID, Type: entity.MovementEntrada, Quantity: d("5"),
	})
	require.NoError(t, err)

	cancelled, err := f.sales.Cancel(ctx, tenantA, userID, sale.ID, dto.UpdateSaleRequest{Action: appsales.ActionCancel, Reason: "cliente desistió"})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)
	assert.Contains(t, cancelled.Notes, "cliente desistió")
	assert.True(t, d("15").Equal(f.stock(t, tenantA, p.ID)))

	movs := f.store.Movements(tenantA)
	last := movs[len(movs)-1]
	assert.Equal(t, entity.MovementEntrada, last.Type)
	assert.True(t, d("3").Equal(last.Quantity))
	assert.True(t, d("12").Equal(last.PreviousStock))
	assert.Equal(t, entity.ReasonCancellation, last.Reason)
	assert.Equal(t, sale.Number, last.Reference)

	_, err = f.sales.Cancel(ctx, tenantA, userID, sale.ID, dto.UpdateSaleRequest{Action: appsales.ActionCancel})
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.store.Movements(tenantA), len(movs))
	assert.True(t, d("15").Equal(f.stock(t, tenantA, p.ID)))

	got, err := f.sales.GetByID(ctx, tenantA, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, got.Status)
}

func TestCancel_AccionYExistencia(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "1")))
	require.NoError(t, err)

	_, err = f.sales.Cancel(ctx, tenantA, userID, sale.ID, dto.UpdateSaleRequest{Action: "DEVOLVER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sales.Cancel(ctx, tenantA, userID, "no-existe", dto.UpdateSaleRequest{Action: appsales.ActionCancel})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.sales.Cancel(ctx, tenantB, userID, sale.ID, dto.UpdateSaleRequest{Action: appsales.ActionCancel})
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro tenant no puede anular")
}

func TestCreate_AislamientoPorTenant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pa := f.product(t, tenantA, "P1", "10.00", "10")
	f.product(t, tenantB, "P1", "10.00", "10")

	sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(pa.ID, "1")))
	require.NoError(t, err)

	_, err = f.sales.Create(ctx, tenantB, userID, cashSale(item(pa.ID, "1")))
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto de A no existe para B")

	_, err = f.sales.GetByID(ctx, tenantB, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.sales.List(ctx, tenantB, dto.SaleFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	// la numeración es independiente por tenant
	pb, err := f.products.List(ctx, tenantB, dto.ProductFilterRequest{})
	require.NoError(t, err)
	require.Len(t, pb.Items, 1)
	saleB, err := f.sales.Create(ctx, tenantB, userID, cashSale(item(pb.Items[0].ID, "1")))
	require.NoError(t, err)
	assert.Equal(t, sale.Number, saleB.Number)
}

func TestCreate_NumeracionContinuaDesdeDatosHeredados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	prefix := numbering.Prefix(numbering.FamilySale, time.Now())
	f.store.SeedSale(tenantA, &entity.Sale{
		ID:            "legacy-1",
		Number:        prefix + "000041",
		DocumentType:  entity.DocumentBoleta,
		PaymentMethod: "EFECTIVO",
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     time.Now().Add(-time.Hour),
	})

	sale, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "1")))
	require.NoError(t, err)
	assert.Equal(t, prefix+"000042", sale.Number)

	sale, err = f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "1")))
	require.NoError(t, err)
	assert.Equal(t, prefix+"000043", sale.Number)
}

func TestList_FiltraPorEstadoYNumero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "10.00", "10")
	s1, err := f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "1")))
	require.NoError(t, err)
	_, err = f.sales.Create(ctx, tenantA, userID, cashSale(item(p.ID, "1")))
	require.NoError(t, err)
	_, err = f.sales.Cancel(ctx, tenantA, userID, s1.ID, dto.UpdateSaleRequest{Action: appsales.ActionCancel})
	require.NoError(t, err)

	list, err := f.sales.List(ctx, tenantA, dto.SaleFilterRequest{Status: entity.SaleStatusCancelled})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, s1.ID, list.Items[0].ID)

	list, err = f.sales.List(ctx, tenantA, dto.SaleFilterRequest{Number: strings.ToLower(s1.Number)})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

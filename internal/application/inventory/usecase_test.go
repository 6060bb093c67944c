package inventory_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/application/dto"
	appinv "github.com/jhoicas/Retail-api/internal/application/inventory"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/jhoicas/Retail-api/internal/infrastructure/memory"
)

const (
	tenantA = tenant.ID("tenant-a")
	tenantB = tenant.ID("tenant-b")
	userID  = "bodega-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type captureExporter struct {
	movements []*entity.StockMovement
	products  map[string]*entity.Product
}

func (c *captureExporter) WriteMovements(w io.Writer, m []*entity.StockMovement, p map[string]*entity.Product) error {
	c.movements, c.products = m, p
	_, err := w.Write([]byte("ok"))
	return err
}

type fixture struct {
	store    *memory.Store
	products *usecase.ProductUseCase
	kardex   *appinv.KardexUseCase
	exporter *captureExporter
}

func newFixture() *fixture {
	store := memory.NewStore()
	tx, repos := store.TxRunner(), store.Repos()
	exp := &captureExporter{}
	return &fixture{
		store:    store,
		products: usecase.NewProductUseCase(tx, repos),
		kardex:   appinv.NewKardexUseCase(tx, repos, exp),
		exporter: exp,
	}
}

func (f *fixture) product(t *testing.T, tid tenant.ID, code, stock string) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), tid, userID, dto.CreateProductRequest{
		Code: code, Name: "Producto " + code, Price: d("1"), InitialStock: d(stock),
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) register(t *testing.T, id, typ, qty string) (*dto.MovementResponse, error) {
	t.Helper()
	return f.kardex.RegisterMovement(context.Background(), tenantA, userID, dto.RegisterMovementRequest{
		ProductID: id, Type: typ, Quantity: d(qty), Reference: "REF-1",
	})
}

func TestRegisterMovement_TiposManuales(t *testing.T) {
	f := newFixture()
	id := f.product(t, tenantA, "P1", "10")

	m, err := f.register(t, id, entity.MovementEntrada, "5")
	require.NoError(t, err)
	assert.True(t, d("10").Equal(m.PreviousStock))
	assert.True(t, d("15").Equal(m.NewStock))
	assert.Equal(t, "manual", m.Reason)
	assert.Equal(t, userID, m.CreatedBy)

	m, err = f.register(t, id, entity.MovementSalida, "4")
	require.NoError(t, err)
	assert.True(t, d("-4").Equal(m.Quantity))
	assert.True(t, d("11").Equal(m.NewStock))

	m, err = f.register(t, id, entity.MovementAjuste, "6")
	require.NoError(t, err)
	assert.True(t, d("-5").Equal(m.Quantity))
	assert.True(t, d("6").Equal(m.NewStock))

	m, err = f.register(t, id, entity.MovementTransferencia, "-6")
	require.NoError(t, err)
	assert.True(t, m.NewStock.IsZero())

	// cada fila encadena con la anterior
	movs := f.store.Movements(tenantA)
	require.Len(t, movs, 5)
	for i := 1; i < len(movs); i++ {
		assert.True(t, movs[i-1].NewStock.Equal(movs[i].PreviousStock))
		assert.True(t, movs[i].PreviousStock.Add(movs[i].Quantity).Equal(movs[i].NewStock))
	}
}

func TestRegisterMovement_Rechazos(t *testing.T) {
	f := newFixture()
	id := f.product(t, tenantA, "P1", "2")

	_, err := f.register(t, id, entity.MovementSalida, "3")
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.True(t, d("2").Equal(ise.Available))

	_, err = f.register(t, id, entity.MovementVenta, "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.register(t, id, "ROBO", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.register(t, "no-existe", entity.MovementEntrada, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, f.store.Movements(tenantA), 1)
}

func TestList_FiltrosYAislamiento(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.product(t, tenantA, "P1", "10")
	p2 := f.product(t, tenantA, "P2", "10")
	f.product(t, tenantB, "P1", "10")
	_, err := f.register(t, p1, entity.MovementSalida, "1")
	require.NoError(t, err)

	list, err := f.kardex.List(ctx, tenantA, dto.MovementFilterRequest{ProductID: p1})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, entity.MovementSalida, list.Items[0].Type, "más reciente primero")

	list, err = f.kardex.List(ctx, tenantA, dto.MovementFilterRequest{Type: entity.MovementAjuste})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)

	list, err = f.kardex.List(ctx, tenantB, dto.MovementFilterRequest{ProductID: p2})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestProductKardex_Consistencia(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.product(t, tenantA, "P1", "10")
	_, err := f.register(t, id, entity.MovementSalida, "3")
	require.NoError(t, err)

	res, err := f.kardex.ProductKardex(ctx, tenantA, id, 1)
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	require.Len(t, res.Movements, 1)
	assert.True(t, d("7").Equal(res.Product.Stock))

	empty := f.product(t, tenantA, "P0", "0")
	res, err = f.kardex.ProductKardex(ctx, tenantA, empty, 20)
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	assert.Empty(t, res.Movements)

	_, err = f.kardex.ProductKardex(ctx, tenantB, id, 20)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_EntregaFilasYProductos(t *testing.T) {
	f := newFixture()
	id := f.product(t, tenantA, "P1", "10")
	_, err := f.register(t, id, entity.MovementEntrada, "1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.kardex.Export(context.Background(), tenantA, dto.MovementFilterRequest{}, &buf))
	assert.Equal(t, "ok", buf.String())
	assert.Len(t, f.exporter.movements, 2)
	require.Contains(t, f.exporter.products, id)
	assert.Equal(t, "P1", f.exporter.products[id].Code)

	assert.ErrorIs(t, f.kardex.Export(context.Background(), "", dto.MovementFilterRequest{}, &buf), domain.ErrUnauthorized)
}

package alerts_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/application/alerts"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/jhoicas/Retail-api/internal/infrastructure/memory"
)

const (
	tenantA = tenant.ID("tenant-a")
	tenantB = tenant.ID("tenant-b")
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	alerts   *alerts.UseCase
	products *usecase.ProductUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	tx, repos := store.TxRunner(), store.Repos()
	return &fixture{
		alerts:   alerts.NewUseCase(tx, repos),
		products: usecase.NewProductUseCase(tx, repos),
	}
}

func (f *fixture) product(t *testing.T, tid tenant.ID, code, stock, min string, reorder *decimal.Decimal) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), tid, "u1", dto.CreateProductRequest{
		Code: code, Name: "Producto " + code, Price: d("1"),
		InitialStock: d(stock), MinStock: d(min), ReorderPoint: reorder,
	})
	require.NoError(t, err)
	return p
}

func TestEvaluate_CreaUnaPendientePorProducto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "0", "5", nil)

	created, err := f.alerts.Evaluate(ctx, tenantA, dto.EvaluateAlertsRequest{})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, p.ID, created[0].ProductID)
	assert.Equal(t, entity.AlertOutOfStock, created[0].Type)
	assert.Equal(t, entity.AlertPending, created[0].Status)
	assert.True(t, d("8").Equal(created[0].SuggestedQty))

	again, err := f.alerts.Evaluate(ctx, tenantA, dto.EvaluateAlertsRequest{ProductIDs: []string{p.ID}})
	require.NoError(t, err)
	assert.Empty(t, again)

	list, err := f.alerts.List(ctx, tenantA, dto.AlertFilterRequest{Status: entity.AlertPending})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

func TestEvaluate_Umbrales(t *testing.T) {
	f := newFixture()
	rp := d("10")
	low := f.product(t, tenantA, "LOW", "3", "5", nil)
	reorder := f.product(t, tenantA, "RP", "8", "5", &rp)
	f.product(t, tenantA, "OK", "50", "5", &rp)

	created, err := f.alerts.Evaluate(context.Background(), tenantA, dto.EvaluateAlertsRequest{})
	require.NoError(t, err)
	require.Len(t, created, 2)

	byProduct := map[string]string{}
	for _, a := range created {
		byProduct[a.ProductID] = a.Type
	}
	assert.Equal(t, entity.AlertLowStock, byProduct[low.ID])
	assert.Equal(t, entity.AlertReorderPoint, byProduct[reorder.ID])
}

func TestEvaluate_ProductoDeOtroTenant(t *testing.T) {
	f := newFixture()
	p := f.product(t, tenantA, "P1", "0", "5", nil)

	_, err := f.alerts.Evaluate(context.Background(), tenantB, dto.EvaluateAlertsRequest{ProductIDs: []string{p.ID}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.alerts.List(context.Background(), tenantB, dto.AlertFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreate_PendienteExistente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "20", "5", nil)

	first, err := f.alerts.Create(ctx, tenantA, dto.CreateAlertRequest{ProductID: p.ID, Notes: " revisar "})
	require.NoError(t, err)
	assert.Equal(t, entity.AlertReorderPoint, first.Type, "sobre los umbrales se usa REORDER_POINT")
	assert.Equal(t, "revisar", first.Notes)

	_, err = f.alerts.Create(ctx, tenantA, dto.CreateAlertRequest{ProductID: p.ID, Type: entity.AlertLowStock})
	require.ErrorIs(t, err, domain.ErrPendingAlertExists)
	var pae *domain.PendingAlertError
	require.ErrorAs(t, err, &pae)
	assert.Equal(t, first.ID, pae.Existing.ID)

	_, err = f.alerts.Create(ctx, tenantA, dto.CreateAlertRequest{ProductID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_MaquinaDeEstados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "0", "5", nil)
	created, err := f.alerts.Create(ctx, tenantA, dto.CreateAlertRequest{ProductID: p.ID})
	require.NoError(t, err)

	_, err = f.alerts.Update(ctx, tenantA, created.ID, dto.UpdateAlertRequest{Status: entity.AlertResolved})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	ack, err := f.alerts.Update(ctx, tenantA, created.ID, dto.UpdateAlertRequest{Status: entity.AlertAcknowledged, AcknowledgedBy: "jefe"})
	require.NoError(t, err)
	assert.Equal(t, entity.AlertAcknowledged, ack.Status)
	assert.NotNil(t, ack.AcknowledgedAt)
	assert.Equal(t, "jefe", ack.AcknowledgedBy)

	ordered, err := f.alerts.Update(ctx, tenantA, created.ID, dto.UpdateAlertRequest{Status: entity.AlertOrdered})
	require.NoError(t, err)
	assert.NotNil(t, ordered.OrderedAt)
	prod, err := f.products.GetByID(ctx, tenantA, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, prod.LastOrderDate, "ORDERED registra la fecha de pedido del producto")

	resolved, err := f.alerts.Update(ctx, tenantA, created.ID, dto.UpdateAlertRequest{Status: entity.AlertResolved})
	require.NoError(t, err)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = f.alerts.Update(ctx, tenantA, created.ID, dto.UpdateAlertRequest{Status: entity.AlertOrdered})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// resuelta la anterior, la evaluación puede abrir una nueva
	again, err := f.alerts.Evaluate(ctx, tenantA, dto.EvaluateAlertsRequest{})
	require.NoError(t, err)
	assert.Len(t, again, 1)

	_, err = f.alerts.Update(ctx, tenantB, created.ID, dto.UpdateAlertRequest{Status: entity.AlertAcknowledged})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, tenantA, "P1", "0", "5", nil)
	created, err := f.alerts.Create(ctx, tenantA, dto.CreateAlertRequest{ProductID: p.ID})
	require.NoError(t, err)

	got, err := f.alerts.GetByID(ctx, tenantA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Producto P1", got.ProductName)

	_, err = f.alerts.GetByID(ctx, tenantB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

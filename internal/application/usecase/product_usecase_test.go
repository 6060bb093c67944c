package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newProductUseCase() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.TxRunner(), store.Repos()), store
}

func TestProductCreate_StockInicialEnKardex(t *testing.T) {
	uc, store := newProductUseCase()

	p, err := uc.Create(context.Background(), tenantA, "u1", dto.CreateProductRequest{
		Code: " P1 ", Name: "Arroz 5kg", Price: d("25.90"), Cost: d("20"), InitialStock: d("12"), MinStock: d("3"),
	})
	require.NoError(t, err)
	assert.Equal(t, "P1", p.Code)
	assert.Equal(t, "NIU", p.UnitMeasure)
	assert.True(t, p.IsActive)
	assert.True(t, d("12").Equal(p.Stock))

	movs := store.Movements(tenantA)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAjuste, movs[0].Type)
	assert.Equal(t, entity.ReasonInitialStock, movs[0].Reason)
	assert.True(t, movs[0].PreviousStock.IsZero())
	assert.True(t, d("12").Equal(movs[0].NewStock))
}

func TestProductCreate_CodigoUnicoPorTenant(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	in := dto.CreateProductRequest{Code: "P1", Name: "Arroz"}

	_, err := uc.Create(ctx, tenantA, "u1", in)
	require.NoError(t, err)
	_, err = uc.Create(ctx, tenantA, "u1", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, tenantB, "u1", in)
	assert.NoError(t, err)

	_, err = uc.Create(ctx, tenantA, "u1", dto.CreateProductRequest{Code: "P2", Name: "X", Price: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, tenantA, "u1", dto.CreateProductRequest{Code: "P3", Name: "X", InitialStock: d("1.2345")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock inicial con más de 3 decimales")
}

func TestProductUpdate_NoTocaStockNiCosto(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, tenantA, "u1", dto.CreateProductRequest{Code: "P1", Name: "Arroz", Cost: d("3"), InitialStock: d("4")})
	require.NoError(t, err)

	name, price, rp, inactive := "Arroz extra", d("9.50"), d("8"), false
	up, err := uc.Update(ctx, tenantA, p.ID, dto.UpdateProductRequest{Name: &name, Price: &price, ReorderPoint: &rp, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Arroz extra", up.Name)
	assert.True(t, price.Equal(up.Price))
	require.NotNil(t, up.ReorderPoint)
	assert.False(t, up.IsActive)
	assert.True(t, d("4").Equal(up.Stock))
	assert.True(t, d("3").Equal(up.Cost))
	assert.Len(t, store.Movements(tenantA), 1)

	up, err = uc.Update(ctx, tenantA, p.ID, dto.UpdateProductRequest{ClearReorder: true})
	require.NoError(t, err)
	assert.Nil(t, up.ReorderPoint)

	_, err = uc.Update(ctx, tenantB, p.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_Filtros(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Code: "A1", Name: "Aceite", InitialStock: d("2"), MinStock: d("5")},
		{Code: "B1", Name: "Azúcar", InitialStock: d("50"), MinStock: d("5")},
		{Code: "C1", Name: "Café", InitialStock: d("5"), MinStock: d("5")},
	} {
		_, err := uc.Create(ctx, tenantA, "u1", in)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, tenantA, dto.ProductFilterRequest{BelowMin: true})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)

	list, err = uc.List(ctx, tenantA, dto.ProductFilterRequest{Search: "caf"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "C1", list.Items[0].Code)

	list, err = uc.List(ctx, tenantA, dto.ProductFilterRequest{PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Page.Total)

	list, err = uc.List(ctx, tenantB, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

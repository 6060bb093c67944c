package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/application/dto"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/infrastructure/memory"
)

func TestSupplier_RUCUnicoYBusqueda(t *testing.T) {
	uc := usecase.NewSupplierUseCase(memory.NewStore().Repos().Suppliers)
	ctx := context.Background()

	s, err := uc.Create(ctx, tenantA, dto.CreateSupplierRequest{Name: " Distribuidora Norte ", RUC: "20123456789"})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora Norte", s.Name)
	assert.True(t, s.IsActive)

	_, err = uc.Create(ctx, tenantA, dto.CreateSupplierRequest{Name: "Otra", RUC: "20123456789"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, tenantB, dto.CreateSupplierRequest{Name: "Otra", RUC: "20123456789"})
	assert.NoError(t, err)

	list, err := uc.List(ctx, tenantA, dto.SearchRequest{Search: "2012345"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)

	_, err = uc.GetByID(ctx, tenantB, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_DocumentoUnico(t *testing.T) {
	uc := usecase.NewClientUseCase(memory.NewStore().Repos().Clients)
	ctx := context.Background()

	c, err := uc.Create(ctx, tenantA, dto.CreateClientRequest{Name: "Ana Pérez", DocumentNumber: "45678912"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, tenantA, dto.CreateClientRequest{Name: "Otra", DocumentNumber: "45678912"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, tenantA, dto.CreateClientRequest{Name: " ", DocumentNumber: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, tenantA, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.Name)

	list, err := uc.List(ctx, tenantA, dto.SearchRequest{Search: "pérez"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

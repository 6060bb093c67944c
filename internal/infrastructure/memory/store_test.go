package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/infrastructure/memory"
)

func product(id, code string) *entity.Product {
	return &entity.Product{ID: id, Code: code, Name: code, Stock: decimal.Zero, IsActive: true, CreatedAt: time.Now()}
}

func TestRun_RestauraEstadoSiFalla(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Repos().Products.Create(ctx, "t1", product("p1", "A")))

	boom := errors.New("boom")
	err := s.TxRunner().Run(ctx, func(r ports.Repos) error {
		if _, err := r.Products.AddStock(ctx, "t1", "p1", decimal.NewFromInt(5)); err != nil {
			return err
		}
		if err := r.Products.Create(ctx, "t1", product("p2", "B")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.IsZero())
	p, err = s.Repos().Products.GetByID(ctx, "t1", "p2")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestAddStock_NoPermiteNegativo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Products.Create(ctx, "t1", product("p1", "A")))

	_, err := repos.Products.AddStock(ctx, "t1", "p1", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = repos.Products.AddStock(ctx, "t2", "p1", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementCreate_ValidaEncadenamiento(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Products.Create(ctx, "t1", product("p1", "A")))

	err := repos.Movements.Create(ctx, "t1", &entity.StockMovement{
		ID: "m1", ProductID: "p1", Type: entity.MovementEntrada,
		Quantity: decimal.NewFromInt(2), PreviousStock: decimal.Zero, NewStock: decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.Movements("t1"))
}

func TestAlerts_UnaPendientePorProducto(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	alerts := s.Repos().Alerts
	a := func(id string) *entity.ReorderAlert {
		return &entity.ReorderAlert{ID: id, ProductID: "p1", Type: entity.AlertLowStock, Status: entity.AlertPending}
	}

	ok, err := alerts.CreateIfNoPending(ctx, "t1", a("a1"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = alerts.CreateIfNoPending(ctx, "t1", a("a2"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, alerts.Create(ctx, "t1", a("a3")), domain.ErrPendingAlertExists)

	ok, err = alerts.CreateIfNoPending(ctx, "t2", a("a4"))
	require.NoError(t, err)
	assert.True(t, ok, "el índice es por tenant")
}

func TestCashRegister_UnaAbiertaPorTenant(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	regs := s.Repos().CashRegisters

	require.NoError(t, regs.Create(ctx, "t1", &entity.CashRegister{ID: "c1", OpenedAt: time.Now()}))
	assert.ErrorIs(t, regs.Create(ctx, "t1", &entity.CashRegister{ID: "c2", OpenedAt: time.Now()}), domain.ErrCashRegisterOpen)

	open, err := regs.GetOpen(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, open)
	now := time.Now()
	open.ClosedAt = &now
	require.NoError(t, regs.Close(ctx, "t1", open))
	assert.ErrorIs(t, regs.Close(ctx, "t1", open), domain.ErrNoOpenCashRegister)
}

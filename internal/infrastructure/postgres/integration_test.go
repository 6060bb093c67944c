package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Retail-api/internal/application/alerts"
	"github.com/jhoicas/Retail-api/internal/application/cashregister"
	"github.com/jhoicas/Retail-api/internal/application/dto"
	appinv "github.com/jhoicas/Retail-api/internal/application/inventory"
	appnum "github.com/jhoicas/Retail-api/internal/application/numbering"
	appsales "github.com/jhoicas/Retail-api/internal/application/sales"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/jhoicas/Retail-api/internal/infrastructure/postgres"
)

const userID = "user-it"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// startPostgres levanta un Postgres efímero con las migraciones aplicadas.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con Postgres omitida en -short")
	}
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("retail"),
		tcpostgres.WithUsername("retail"),
		tcpostgres.WithPassword("retail"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("docker no disponible: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	mg, err := postgres.NewMigrator(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Close())

	pool, err := postgres.NewPoolFromDSN(ctx, dsn, 8, 0)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type env struct {
	products *usecase.ProductUseCase
	sales    *appsales.UseCase
	kardex   *appinv.KardexUseCase
	cash     *cashregister.UseCase
	alerts   *alerts.UseCase
	numbers  *appnum.UseCase
}

func newEnv(pool *pgxpool.Pool) *env {
	tx, repos := postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	return &env{
		products: usecase.NewProductUseCase(tx, repos),
		sales:    appsales.NewUseCase(tx, repos),
		kardex:   appinv.NewKardexUseCase(tx, repos, nil),
		cash:     cashregister.NewUseCase(tx, repos),
		alerts:   alerts.NewUseCase(tx, repos),
		numbers:  appnum.NewUseCase(tx),
	}
}

func (e *env) product(t *testing.T, tid tenant.ID, code, stock string) string {
	t.Helper()
	p, err := e.products.Create(context.Background(), tid, userID, dto.CreateProductRequest{
		Code: code, Name: "Producto " + code, Price: d("10.00"), InitialStock: d(stock), MinStock: d("5"),
	})
	require.NoError(t, err)
	return p.ID
}

func (e *env) sell(tid tenant.ID, productID, qty string) (*dto.SaleResponse, error) {
	return e.sales.Create(context.Background(), tid, userID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: d(qty)}},
		PaymentMethod: "EFECTIVO",
	})
}

func TestPostgres_Integracion(t *testing.T) {
	e := newEnv(startPostgres(t))
	ctx := context.Background()

	t.Run("venta y anulación", func(t *testing.T) {
		tid := tenant.ID("it-ventas")
		id := e.product(t, tid, "P1", "10")

		sale, err := e.sell(tid, id, "3")
		require.NoError(t, err)
		assert.True(t, d("35.40").Equal(sale.Total))

		_, err = e.sell(tid, id, "50")
		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		_, err = e.sales.Cancel(ctx, tid, userID, sale.ID, dto.UpdateSaleRequest{Action: appsales.ActionCancel})
		require.NoError(t, err)
		_, err = e.sales.Cancel(ctx, tid, userID, sale.ID, dto.UpdateSaleRequest{Action: appsales.ActionCancel})
		assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)

		k, err := e.kardex.ProductKardex(ctx, tid, id, 20)
		require.NoError(t, err)
		assert.True(t, k.Consistent)
		assert.Len(t, k.Movements, 3, "inicial, venta y reverso; la venta fallida no deja rastro")
		assert.True(t, d("10").Equal(k.Product.Stock))
	})

	t.Run("ventas concurrentes no sobrevenden", func(t *testing.T) {
		tid := tenant.ID("it-concurrencia")
		id := e.product(t, tid, "P1", "5")

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			ok, fail int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := e.sell(tid, id, "1")
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					ok++
				} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
					fail++
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 5, ok)
		assert.Equal(t, 5, fail)

		k, err := e.kardex.ProductKardex(ctx, tid, id, 50)
		require.NoError(t, err)
		assert.True(t, k.Product.Stock.IsZero())
		assert.True(t, k.Consistent)
	})

	t.Run("una sola caja abierta", func(t *testing.T) {
		tid := tenant.ID("it-caja")
		_, err := e.cash.Open(ctx, tid, userID, dto.OpenCashRegisterRequest{OpeningAmount: d("100")})
		require.NoError(t, err)
		_, err = e.cash.Open(ctx, tid, userID, dto.OpenCashRegisterRequest{OpeningAmount: d("50")})
		assert.ErrorIs(t, err, domain.ErrCashRegisterOpen)

		closed, err := e.cash.Close(ctx, tid, userID, dto.CloseCashRegisterRequest{ClosingAmount: d("100")})
		require.NoError(t, err)
		require.NotNil(t, closed.Difference)
		assert.True(t, closed.Difference.IsZero())

		_, err = e.cash.Close(ctx, tid, userID, dto.CloseCashRegisterRequest{ClosingAmount: d("1")})
		assert.ErrorIs(t, err, domain.ErrNoOpenCashRegister)
	})

	t.Run("alerta pendiente única", func(t *testing.T) {
		tid := tenant.ID("it-alertas")
		id := e.product(t, tid, "P1", "0")

		created, err := e.alerts.Evaluate(ctx, tid, dto.EvaluateAlertsRequest{})
		require.NoError(t, err)
		require.Len(t, created, 1)

		_, err = e.alerts.Create(ctx, tid, dto.CreateAlertRequest{ProductID: id})
		var pae *domain.PendingAlertError
		require.ErrorAs(t, err, &pae)
		assert.Equal(t, created[0].ID, pae.Existing.ID)

		_, err = e.alerts.Update(ctx, tid, created[0].ID, dto.UpdateAlertRequest{Status: "ORDERED"})
		require.NoError(t, err)
		p, err := e.products.GetByID(ctx, tid, id)
		require.NoError(t, err)
		assert.NotNil(t, p.LastOrderDate)
	})

	t.Run("numeración concurrente", func(t *testing.T) {
		tid := tenant.ID("it-numeracion")
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = map[string]bool{}
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := e.numbers.Reserve(ctx, tid, "QUOTATION")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[res.Number] = true
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Len(t, seen, 20)
	})

	t.Run("aislamiento por tenant", func(t *testing.T) {
		a, b := tenant.ID("it-tenant-a"), tenant.ID("it-tenant-b")
		id := e.product(t, a, "SKU", "5")
		e.product(t, b, "SKU", "5")

		_, err := e.products.GetByID(ctx, b, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = e.sell(b, id, "1")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		sa, err := e.sell(a, id, "1")
		require.NoError(t, err)
		_, err = e.sales.GetByID(ctx, b, sa.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		got, err := e.sales.GetByID(ctx, a, sa.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1, "los ítems se cargan con el tenant de la venta")
		assert.Equal(t, id, got.Items[0].ProductID)

		listB, err := e.sales.List(ctx, b, dto.SaleFilterRequest{})
		require.NoError(t, err)
		for _, s := range listB.Items {
			assert.NotEqual(t, sa.ID, s.ID)
		}
	})
}

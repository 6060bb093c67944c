package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Retail-api/internal/application/alerts"
	"github.com/jhoicas/Retail-api/internal/application/cashregister"
	"github.com/jhoicas/Retail-api/internal/application/inventory"
	"github.com/jhoicas/Retail-api/internal/application/numbering"
	"github.com/jhoicas/Retail-api/internal/application/purchasing"
	"github.com/jhoicas/Retail-api/internal/application/sales"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	domaininv "github.com/jhoicas/Retail-api/internal/domain/inventory"
	"github.com/jhoicas/Retail-api/internal/infrastructure/excel"
	"github.com/jhoicas/Retail-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/Retail-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Retail-api/internal/interfaces/http"
	"github.com/jhoicas/Retail-api/pkg/config"
	"github.com/jhoicas/Retail-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("costing", cfg.Ledger.CostingMethod).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	if cfg.Migrations.OnStart {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var store idempotency.Store
	if cfg.Redis.Addr != "" {
		store, err = idempotency.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: claves de idempotencia en memoria (una sola instancia)")
		store = idempotency.NewMemoryStore(0)
	}
	defer store.Close()

	costing, err := domaininv.NewCostingStrategy(cfg.Ledger.CostingMethod)
	if err != nil {
		log.Fatal().Err(err).Msg("estrategia de costeo")
	}

	txRunner := postgres.NewTxRunner(pool)
	repos := postgres.NewRepos(pool)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init` previo)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Retail API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(txRunner, repos),
		SupplierUC:     usecase.NewSupplierUseCase(repos.Suppliers),
		ClientUC:       usecase.NewClientUseCase(repos.Clients),
		SalesUC:        sales.NewUseCase(txRunner, repos),
		PurchasesUC:    purchasing.NewUseCase(txRunner, repos, costing),
		KardexUC:       inventory.NewKardexUseCase(txRunner, repos, excel.NewKardexExporter()),
		NumberingUC:    numbering.NewUseCase(txRunner),
		CashRegisterUC: cashregister.NewUseCase(txRunner, repos),
		AlertsUC:       alerts.NewUseCase(txRunner, repos),
		Idempotency:    store,
		IdempotencyTTL: cfg.Redis.KeyTTL,
		JWTSecret:      cfg.JWT.Secret,
		ServiceName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

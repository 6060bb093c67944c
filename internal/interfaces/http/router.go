package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Retail-api/internal/application/alerts"
	"github.com/jhoicas/Retail-api/internal/application/cashregister"
	"github.com/jhoicas/Retail-api/internal/application/inventory"
	"github.com/jhoicas/Retail-api/internal/application/numbering"
	"github.com/jhoicas/Retail-api/internal/application/purchasing"
	"github.com/jhoicas/Retail-api/internal/application/sales"
	"github.com/jhoicas/Retail-api/internal/application/usecase"
	"github.com/jhoicas/Retail-api/internal/infrastructure/idempotency"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	ClientUC       *usecase.ClientUseCase
	SalesUC        *sales.UseCase
	PurchasesUC    *purchasing.UseCase
	KardexUC       *inventory.KardexUseCase
	NumberingUC    *numbering.UseCase
	CashRegisterUC *cashregister.UseCase
	AlertsUC       *alerts.UseCase
	Idempotency    idempotency.Store
	IdempotencyTTL time.Duration
	JWTSecret      string
	ServiceName    string
}

// Router registra las rutas de la API. Todo lo que cuelga de /api exige Bearer Token
// con tenant.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api", TenantMiddleware(deps.JWTSecret))
	idem := Idempotency(deps.Idempotency, deps.IdempotencyTTL)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", idem, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Patch("/:id", saleHandler.Update)

	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchases.Post("/", idem, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	kardex := api.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC)
	kardex.Post("/", kardexHandler.RegisterMovement)
	kardex.Get("/", kardexHandler.List)
	kardex.Get("/export", kardexHandler.Export)
	kardex.Get("/products/:id", kardexHandler.ProductKardex)

	numberingHandler := NewNumberingHandler(deps.NumberingUC)
	api.Post("/numbering/:family", numberingHandler.Reserve)

	cash := api.Group("/cash-register")
	cashHandler := NewCashRegisterHandler(deps.CashRegisterUC)
	cash.Post("/open", cashHandler.Open)
	cash.Post("/close", cashHandler.Close)
	cash.Get("/status", cashHandler.Status)
	cash.Get("/history", cashHandler.History)

	alertsGroup := api.Group("/reorder-alerts")
	alertHandler := NewAlertHandler(deps.AlertsUC)
	alertsGroup.Post("/evaluate", alertHandler.Evaluate)
	alertsGroup.Post("/", alertHandler.Create)
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Get("/:id", alertHandler.GetByID)
	alertsGroup.Patch("/:id", alertHandler.Update)
}

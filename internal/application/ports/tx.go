// Package ports define la unidad de trabajo que usan los casos de uso.
package ports

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Products      repository.ProductRepository
	Movements     repository.StockMovementRepository
	Sales         repository.SaleRepository
	Purchases     repository.PurchaseRepository
	Suppliers     repository.SupplierRepository
	Clients       repository.ClientRepository
	CashRegisters repository.CashRegisterRepository
	Alerts        repository.ReorderAlertRepository
	Sequences     repository.SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo escrito; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

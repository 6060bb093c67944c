package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Métodos de costeo soportados para las compras.
const (
	CostingLastCost        = "last_cost"
	CostingWeightedAverage = "weighted_average"
)

// CostingStrategy calcula el nuevo costo unitario de un producto tras una entrada.
type CostingStrategy interface {
	Method() string
	NewCost(currentStock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal
}

// NewCostingStrategy devuelve la estrategia para el método configurado.
func NewCostingStrategy(method string) (CostingStrategy, error) {
	switch method {
	case "", CostingLastCost:
		return LastCost{}, nil
	case CostingWeightedAverage:
		return WeightedAverage{}, nil
	}
	return nil, fmt.Errorf("método de costeo desconocido: %q", method)
}

// LastCost sobrescribe el costo con el costo de la última compra.
type LastCost struct{}

// Method devuelve "last_cost".
func (LastCost) Method() string { return CostingLastCost }

// NewCost ignora el stock y costo actuales: el costo pasa a ser el de la entrada.
func (LastCost) NewCost(_, _, _, inCost decimal.Decimal) decimal.Decimal {
	return inCost
}

// WeightedAverage costo promedio ponderado.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
type WeightedAverage struct{}

// Method devuelve "weighted_average".
func (WeightedAverage) Method() string { return CostingWeightedAverage }

// NewCost delega en CostCalculator.
func (WeightedAverage) NewCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	return CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada)
}

// CostCalculator implementa el promedio ponderado, redondeado a 4 decimales.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.IsNegative() {
		stockActual = decimal.Zero
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}

package repository

import "time"

// Límites de paginación compartidos por todos los listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page paginación por limit/offset.
type Page struct {
	Limit  int
	Offset int
}

// Normalize aplica los valores por defecto y el tope de limit.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ProductFilter filtros de catálogo.
type ProductFilter struct {
	Search     string // subcadena sobre code o name (sin distinguir mayúsculas)
	ActiveOnly bool
	BelowMin   bool // stock <= min_stock
	Page
}

// MovementFilter filtros del kardex. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID string // igualdad
	Type      string // igualdad
	From, To  *time.Time
	Page
}

// SaleFilter filtros de ventas.
type SaleFilter struct {
	Status        string
	PaymentMethod string
	ClientID      string
	NumberPrefix  string // prefijo del número (V202601...)
	From, To      *time.Time
	Page
}

// PurchaseFilter filtros de compras.
type PurchaseFilter struct {
	SupplierID string
	From, To   *time.Time
	Page
}

// AlertFilter filtros de alertas de reposición.
type AlertFilter struct {
	Status    string
	Type      string
	ProductID string
	Page
}

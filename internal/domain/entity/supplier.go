package entity

import "time"

// Supplier proveedor de un tenant.
type Supplier struct {
	ID        string
	TenantID  string
	Name      string
	RUC       string // único por tenant
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

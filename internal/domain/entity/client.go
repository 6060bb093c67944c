package entity

import "time"

// Client representa un cliente del tenant (comprador en ventas).
type Client struct {
	ID             string
	TenantID       string
	Name           string
	DocumentNumber string // DNI o RUC, único por tenant
	Email          string
	Phone          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package dto

import "time"

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	RUC   string `json:"ruc" validate:"required,numeric,len=11"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RUC       string    `json:"ruc"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	DocumentNumber string `json:"documentNumber" validate:"required,min=8,max=15"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DocumentNumber string    `json:"documentNumber"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SearchRequest query de búsqueda simple paginada.
type SearchRequest struct {
	Search string `query:"search"`
	PageRequest
}

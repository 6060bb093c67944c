package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock genera un AJUSTE en el kardex.
type CreateProductRequest struct {
	Code         string           `json:"code" validate:"required,min=1,max=50"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description"`
	UnitMeasure  string           `json:"unitMeasure" validate:"omitempty,max=20"`
	Price        decimal.Decimal  `json:"price" validate:"gte=0"`
	Cost         decimal.Decimal  `json:"cost" validate:"gte=0"`
	InitialStock decimal.Decimal  `json:"initialStock" validate:"gte=0"`
	MinStock     decimal.Decimal  `json:"minStock" validate:"gte=0"`
	ReorderPoint *decimal.Decimal `json:"reorderPoint" validate:"omitempty,gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	UnitMeasure  *string          `json:"unitMeasure" validate:"omitempty,max=20"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	MinStock     *decimal.Decimal `json:"minStock" validate:"omitempty,gte=0"`
	ReorderPoint *decimal.Decimal `json:"reorderPoint" validate:"omitempty,gte=0"`
	ClearReorder bool             `json:"clearReorderPoint"`
	IsActive     *bool            `json:"isActive"`
}

// ProductFilterRequest query de GET /api/products.
type ProductFilterRequest struct {
	Search     string `query:"search"`
	ActiveOnly bool   `query:"active"`
	BelowMin   bool   `query:"lowStock"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	UnitMeasure   string           `json:"unitMeasure"`
	Price         decimal.Decimal  `json:"price"`
	Cost          decimal.Decimal  `json:"cost"`
	Stock         decimal.Decimal  `json:"stock"`
	MinStock      decimal.Decimal  `json:"minStock"`
	ReorderPoint  *decimal.Decimal `json:"reorderPoint"`
	IsActive      bool             `json:"isActive"`
	LastOrderDate *time.Time       `json:"lastOrderDate,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

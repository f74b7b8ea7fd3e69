package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderPoint int             `json:"reorder_point"`
	IsActive     *bool           `json:"is_active"` // nil = activo
}

// UpdateProductRequest edición parcial: solo los campos no-nil se aplican
// sobre la última fila persistida.
type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ReorderPoint *int             `json:"reorder_point"`
	IsActive     *bool            `json:"is_active"`
}

// ProductResponse producto con su stock derivado.
type ProductResponse struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderPoint int             `json:"reorder_point"`
	IsActive     bool            `json:"is_active"`
	StockOnHand  int64           `json:"stock_on_hand"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductDetailResponse producto más su historial de movimientos
// (más recientes primero).
type ProductDetailResponse struct {
	ProductResponse
	Movements []MovementResponse `json:"movements"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. SKU es único (case-sensitive).
// El stock NUNCA vive aquí: se deriva del historial de movimientos.
type Product struct {
	ID           int64
	SKU          string
	Name         string
	Description  string
	UnitCost     decimal.Decimal // costo unitario, nunca negativo
	ReorderPoint int             // punto de reorden; 0 = deshabilitado
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductWithStock producto junto con su stock disponible derivado del ledger.
type ProductWithStock struct {
	Product
	StockOnHand int64
}

// IsLowStock regla uniforme de bajo stock: requiere punto de reorden
// habilitado (> 0) y stock disponible por debajo o igual a ese punto.
func (p ProductWithStock) IsLowStock() bool {
	return p.ReorderPoint > 0 && p.StockOnHand <= int64(p.ReorderPoint)
}

package repository

import (
	"time"

	"github.com/jhoicas/inventario-lite/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el ledger de
// movimientos (DIP). El ledger es append-only: no existen Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) (int64, error)
	// ListByProduct movimientos de un producto, más recientes primero.
	// limit <= 0 devuelve todos.
	ListByProduct(productID int64, limit int) ([]*entity.StockMovement, error)
	ListSince(since time.Time) ([]*entity.StockMovement, error)
	// StockOnHand agrega el historial completo del producto; devuelve 0 (sin
	// error) para un producto sin movimientos.
	StockOnHand(productID int64) (int64, error)
}

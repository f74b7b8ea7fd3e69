package repository

import (
	"time"

	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock disponible siempre se deriva de los movimientos en la lectura;
// nunca es una columna persistida.
type ProductRepository interface {
	Create(product *entity.Product) (int64, error)
	GetByID(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// Delete elimina el producto y, en cascada, todos sus movimientos.
	// Es idempotente: borrar un id ausente no es error.
	Delete(id int64) error
	GetWithStock(id int64) (*entity.ProductWithStock, error)
	ListWithStock(filter query.ProductFilter, sort query.ProductSort, limit int) ([]*entity.ProductWithStock, error)
	ListUpdatedSince(since time.Time) ([]*entity.Product, error)
}

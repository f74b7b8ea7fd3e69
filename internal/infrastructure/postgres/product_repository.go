package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// stockExpr agregación del stock disponible: OUT resta su cantidad, IN y
// ADJUST suman (ADJUST puede ser negativo). Nunca hay columna de stock
// persistida; este es el único origen del valor.
const stockExpr = `COALESCE(SUM(CASE WHEN m.kind = 'OUT' THEN -m.quantity ELSE m.quantity END), 0)`

const productColumns = `p.id, p.sku, p.name, p.description, p.unit_cost, p.reorder_point, p.is_active, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo y devuelve el id asignado.
func (r *ProductRepo) Create(product *entity.Product) (int64, error) {
	sql := `
		INSERT INTO products (sku, name, description, unit_cost, reorder_point, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), sql,
		product.SKU, product.Name, product.Description, product.UnitCost,
		product.ReorderPoint, product.IsActive, product.CreatedAt, product.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por id; nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
}

// GetBySKU obtiene un producto por SKU exacto (case-sensitive).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products p WHERE p.sku = $1`, sku)
}

// GetForUpdate obtiene el producto bloqueando su fila. Solo tiene sentido
// dentro de una transacción: el lock serializa appends concurrentes.
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products p WHERE p.id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(sql string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), sql, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitCost,
		&p.ReorderPoint, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza la fila completa del producto. ErrNotFound si el id no
// existe; ErrDuplicate si el SKU nuevo colisiona con otro producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	sql := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, unit_cost = $5, reorder_point = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), sql,
		product.ID, product.SKU, product.Name, product.Description,
		product.UnitCost, product.ReorderPoint, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto; la FK con ON DELETE CASCADE arrastra sus
// movimientos en la misma sentencia. Idempotente si el id ya no existe.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// GetWithStock producto con su stock derivado; nil si no existe.
func (r *ProductRepo) GetWithStock(id int64) (*entity.ProductWithStock, error) {
	sql := `
		SELECT ` + productColumns + `, ` + stockExpr + ` AS stock_on_hand
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`
	var p entity.ProductWithStock
	err := r.q.QueryRow(context.Background(), sql, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitCost,
		&p.ReorderPoint, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.StockOnHand,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with stock: %w", err)
	}
	return &p, nil
}

// ListWithStock productos con stock derivado, filtrados y ordenados. El filtro
// de bajo stock y la cota de stock van en HAVING porque dependen del agregado.
func (r *ProductRepo) ListWithStock(filter query.ProductFilter, sort query.ProductSort, limit int) ([]*entity.ProductWithStock, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + productColumns + `, ` + stockExpr + ` AS stock_on_hand
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id`)

	var args []any
	var where []string
	if filter.ActiveOnly {
		where = append(where, "p.is_active")
	}
	if filter.SKUContains != "" {
		args = append(args, filter.SKUContains)
		where = append(where, fmt.Sprintf("p.sku ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.NameContains != "" {
		args = append(args, filter.NameContains)
		where = append(where, fmt.Sprintf("p.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	sb.WriteString(" GROUP BY p.id")

	var having []string
	if filter.LowStockOnly {
		// Regla uniforme: punto de reorden habilitado y stock por debajo.
		having = append(having, "p.reorder_point > 0 AND "+stockExpr+" <= p.reorder_point")
	}
	if filter.MaxStockOnHand != nil {
		args = append(args, *filter.MaxStockOnHand)
		having = append(having, fmt.Sprintf(stockExpr+" <= $%d", len(args)))
	}
	if len(having) > 0 {
		sb.WriteString(" HAVING " + strings.Join(having, " AND "))
	}

	sb.WriteString(" ORDER BY " + orderBy(sort))
	if limit > 0 {
		args = append(args, limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list products with stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductWithStock
	for rows.Next() {
		var p entity.ProductWithStock
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitCost,
			&p.ReorderPoint, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.StockOnHand); err != nil {
			return nil, fmt.Errorf("scan product with stock: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// orderBy traduce el orden tipado a SQL. El orden por defecto es por nombre
// sin distinguir mayúsculas.
func orderBy(sort query.ProductSort) string {
	switch sort {
	case query.SortStockAsc:
		return "stock_on_hand ASC, LOWER(p.name) ASC"
	case query.SortStockDesc:
		return "stock_on_hand DESC, LOWER(p.name) ASC"
	case query.SortNameDesc:
		return "LOWER(p.name) DESC"
	default:
		return "LOWER(p.name) ASC"
	}
}

// ListUpdatedSince productos cuya última actualización es >= since.
func (r *ProductRepo) ListUpdatedSince(since time.Time) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products p WHERE p.updated_at >= $1 ORDER BY p.updated_at DESC`
	rows, err := r.q.Query(context.Background(), sql, since)
	if err != nil {
		return nil, fmt.Errorf("list products updated since: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitCost,
			&p.ReorderPoint, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto del ledger sobre PostgreSQL.
// Solo inserta y lee: el ledger es append-only por contrato.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento y devuelve su id. Un producto inexistente se
// reporta como ErrNotFound (violación de FK).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) (int64, error) {
	sql := `
		INSERT INTO stock_movements (product_id, kind, quantity, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), sql,
		movement.ProductID, string(movement.Kind), movement.Quantity, movement.Note, movement.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("insert movement: %w", err)
	}
	return id, nil
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID int64, limit int) ([]*entity.StockMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, product_id, kind, quantity, note, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`)
	args := []any{productID}
	if limit > 0 {
		args = append(args, limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return r.list(sb.String(), args...)
}

// ListSince movimientos registrados desde since, más recientes primero.
func (r *StockMovementRepo) ListSince(since time.Time) ([]*entity.StockMovement, error) {
	sql := `
		SELECT id, product_id, kind, quantity, note, created_at
		FROM stock_movements
		WHERE created_at >= $1
		ORDER BY created_at DESC, id DESC`
	return r.list(sql, since)
}

func (r *StockMovementRepo) list(sql string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var kind string
		if err := rows.Scan(&m.ID, &m.ProductID, &kind, &m.Quantity, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// StockOnHand agrega el historial completo del producto con la misma fórmula
// que el listado: OUT resta, IN y ADJUST suman. Un producto sin movimientos
// devuelve 0, no error.
func (r *StockMovementRepo) StockOnHand(productID int64) (int64, error) {
	sql := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'OUT' THEN -quantity ELSE quantity END), 0)
		FROM stock_movements
		WHERE product_id = $1`
	var stock int64
	if err := r.q.QueryRow(context.Background(), sql, productID).Scan(&stock); err != nil {
		return 0, fmt.Errorf("stock on hand: %w", err)
	}
	return stock, nil
}

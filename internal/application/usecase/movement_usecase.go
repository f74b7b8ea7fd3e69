package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/application/authz"
	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del append al ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error) error
}

// MovementUseCase registra movimientos de stock de forma transaccional.
// La fila del producto se bloquea (SELECT FOR UPDATE) dentro de la tx, de modo
// que dos appends simultáneos sobre el mismo producto se serializan y ninguno
// se pierde.
type MovementUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movements repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movements: movements}
}

// Register valida y normaliza la cantidad, y appendea el movimiento.
// Normalización: IN y OUT exigen cantidad cruda positiva (OUT se guarda como
// magnitud); ADJUST conserva su signo y rechaza cero.
func (uc *MovementUseCase) Register(ctx context.Context, session *entity.SessionUser, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if err := authz.Require(session, authz.OpAppendMovement); err != nil {
		return nil, err
	}

	kind := entity.MovementKind(strings.ToUpper(strings.TrimSpace(in.Kind)))
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "debe ser IN, OUT o ADJUST")
	}

	qty := in.Quantity
	switch kind {
	case entity.MovementIN:
		if qty <= 0 {
			return nil, domain.NewValidationError("quantity", "debe ser > 0 para IN")
		}
	case entity.MovementOUT:
		if qty <= 0 {
			return nil, domain.NewValidationError("quantity", "debe ser > 0 para OUT")
		}
		// OUT se almacena como magnitud; el signo lo aporta la agregación.
		if qty < 0 {
			qty = -qty
		}
	case entity.MovementADJUST:
		if qty == 0 {
			return nil, domain.NewValidationError("quantity", "el ajuste no puede ser 0")
		}
	}

	movement := &entity.StockMovement{
		ProductID: in.ProductID,
		Kind:      kind,
		Quantity:  qty,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error {
		// Bloquea la fila del producto: serializa appends concurrentes del
		// mismo producto y garantiza que el producto exista al insertar.
		product, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		id, err := movements.Create(movement)
		if err != nil {
			return err
		}
		movement.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ListByProduct historial de movimientos de un producto, más recientes primero.
func (uc *MovementUseCase) ListByProduct(session *entity.SessionUser, productID int64, limit int) ([]dto.MovementResponse, error) {
	if err := authz.Require(session, authz.OpReadInventory); err != nil {
		return nil, err
	}
	movements, err := uc.movements.ListByProduct(productID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

// StockOnHand stock disponible derivado del historial; 0 para un producto sin
// movimientos.
func (uc *MovementUseCase) StockOnHand(session *entity.SessionUser, productID int64) (int64, error) {
	if err := authz.Require(session, authz.OpReadInventory); err != nil {
		return 0, err
	}
	return uc.movements.StockOnHand(productID)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/application/authz"
	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

// ProductUseCase reglas de negocio del catálogo sobre el ledger: validación de
// campos, unicidad de SKU y edición sobre la última fila persistida. Toda
// mutación pasa primero por la puerta de autorización.
type ProductUseCase struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, movements repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{products: products, movements: movements}
}

// Create crea un producto nuevo. SKU duplicado devuelve ErrDuplicate sin
// alterar la fila existente.
func (uc *ProductUseCase) Create(session *entity.SessionUser, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := authz.Require(session, authz.OpManageProducts); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if in.ReorderPoint < 0 {
		return nil, domain.NewValidationError("reorder_point", "no puede ser negativo")
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.NewValidationError("unit_cost", "no puede ser negativo")
	}

	existing, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		SKU:          sku,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		UnitCost:     in.UnitCost,
		ReorderPoint: in.ReorderPoint,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := uc.products.Create(product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	// Un producto recién creado no tiene movimientos: stock 0.
	return toProductResponse(&entity.ProductWithStock{Product: *product}), nil
}

// Update edita un producto. Carga siempre la última fila persistida y aplica
// el delta sobre ella, nunca sobre estado del cliente: así una edición no pisa
// cambios concurrentes en campos que no tocó.
func (uc *ProductUseCase) Update(session *entity.SessionUser, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := authz.Require(session, authz.OpManageProducts); err != nil {
		return nil, err
	}

	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.NewValidationError("sku", "es requerido")
		}
		if sku != product.SKU {
			other, err := uc.products.GetBySKU(sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "es requerido")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.NewValidationError("unit_cost", "no puede ser negativo")
		}
		product.UnitCost = *in.UnitCost
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.NewValidationError("reorder_point", "no puede ser negativo")
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}

	stock, err := uc.movements.StockOnHand(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(&entity.ProductWithStock{Product: *product, StockOnHand: stock}), nil
}

// Delete elimina el producto y, en cascada, todos sus movimientos. Borrar un
// id ausente es un no-op exitoso.
func (uc *ProductUseCase) Delete(session *entity.SessionUser, id int64) error {
	if err := authz.Require(session, authz.OpManageProducts); err != nil {
		return err
	}
	return uc.products.Delete(id)
}

// GetDetail producto con stock derivado e historial de movimientos.
func (uc *ProductUseCase) GetDetail(session *entity.SessionUser, id int64) (*dto.ProductDetailResponse, error) {
	if err := authz.Require(session, authz.OpReadInventory); err != nil {
		return nil, err
	}
	product, err := uc.products.GetWithStock(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movements.ListByProduct(id, 0)
	if err != nil {
		return nil, err
	}
	detail := &dto.ProductDetailResponse{
		ProductResponse: *toProductResponse(product),
		Movements:       make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		detail.Movements = append(detail.Movements, *toMovementResponse(m))
	}
	return detail, nil
}

func toProductResponse(p *entity.ProductWithStock) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		UnitCost:     p.UnitCost,
		ReorderPoint: p.ReorderPoint,
		IsActive:     p.IsActive,
		StockOnHand:  p.StockOnHand,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/inventario-lite/internal/application/authz"
	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

// QueryUseCase ruta de lectura: ejecuta intenciones de consulta resueltas
// contra el ledger. El stock se deriva en cada lectura; nada se cachea entre
// escrituras.
type QueryUseCase struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(products repository.ProductRepository, movements repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{products: products, movements: movements}
}

// ListProducts productos con stock, filtrados y ordenados.
func (uc *QueryUseCase) ListProducts(session *entity.SessionUser, filter query.ProductFilter, sortBy query.ProductSort, limit int) (*dto.ProductListResponse, error) {
	if err := authz.Require(session, authz.OpReadInventory); err != nil {
		return nil, err
	}
	if !sortBy.Valid() {
		sortBy = query.SortNameAsc
	}
	list, err := uc.products.ListWithStock(filter, sortBy, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// ChangesSince productos actualizados y movimientos registrados desde since,
// con el neto de stock por producto.
func (uc *QueryUseCase) ChangesSince(session *entity.SessionUser, since time.Time) (*dto.ChangesResponse, error) {
	if err := authz.Require(session, authz.OpReadInventory); err != nil {
		return nil, err
	}

	updated, err := uc.products.ListUpdatedSince(since)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movements.ListSince(since)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChangesResponse{
		SinceEpochMs:    since.UnixMilli(),
		UpdatedProducts: make([]dto.ProductResponse, 0, len(updated)),
		Movements:       make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, p := range updated {
		stock, err := uc.movements.StockOnHand(p.ID)
		if err != nil {
			return nil, err
		}
		resp.UpdatedProducts = append(resp.UpdatedProducts, *toProductResponse(&entity.ProductWithStock{Product: *p, StockOnHand: stock}))
	}

	byProduct := make(map[int64][]entity.StockMovement)
	for _, m := range movements {
		resp.Movements = append(resp.Movements, *toMovementResponse(m))
		byProduct[m.ProductID] = append(byProduct[m.ProductID], *m)
	}
	for productID, movs := range byProduct {
		resp.Summary = append(resp.Summary, dto.ChangeSummary{
			ProductID: productID,
			NetChange: entity.SumStock(movs),
		})
	}
	sort.Slice(resp.Summary, func(i, j int) bool {
		return resp.Summary[i].ProductID < resp.Summary[j].ProductID
	})
	return resp, nil
}

// Execute hace match exhaustivo sobre la unión de intenciones y ejecuta la
// variante correspondiente, devolviendo la intención como eco junto al
// resultado.
func (uc *QueryUseCase) Execute(session *entity.SessionUser, intent query.Intent) (*dto.AIQueryResponse, error) {
	switch it := intent.(type) {
	case query.ProductsIntent:
		list, err := uc.ListProducts(session, it.Filter, it.Sort, it.Limit)
		if err != nil {
			return nil, err
		}
		return &dto.AIQueryResponse{Intent: toIntentDTO(intent), Products: list}, nil
	case query.ChangesIntent:
		changes, err := uc.ChangesSince(session, it.Since)
		if err != nil {
			return nil, err
		}
		return &dto.AIQueryResponse{Intent: toIntentDTO(intent), Changes: changes}, nil
	default:
		// Inalcanzable: la unión está sellada en el paquete query.
		return nil, fmt.Errorf("intención desconocida %T", intent)
	}
}

func toIntentDTO(intent query.Intent) dto.IntentDTO {
	switch it := intent.(type) {
	case query.ProductsIntent:
		return dto.IntentDTO{
			Type:           "products",
			LowStockOnly:   it.Filter.LowStockOnly,
			MaxStockOnHand: it.Filter.MaxStockOnHand,
			SKUContains:    it.Filter.SKUContains,
			NameContains:   it.Filter.NameContains,
			ActiveOnly:     it.Filter.ActiveOnly,
			Sort:           string(it.Sort),
			Limit:          it.Limit,
		}
	case query.ChangesIntent:
		return dto.IntentDTO{Type: "changes", SinceEpochMs: it.Since.UnixMilli()}
	default:
		return dto.IntentDTO{}
	}
}

package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/application/usecase"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

// fakeStore almacén en memoria compartido por los repos de prueba. Replica el
// contrato de los adaptadores de PostgreSQL: SKU único, ledger append-only,
// stock derivado por agregación y borrado en cascada.
type fakeStore struct {
	products       map[int64]*entity.Product
	movements      []*entity.StockMovement
	nextProductID  int64
	nextMovementID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[int64]*entity.Product)}
}

func (s *fakeStore) productRepo() *fakeProductRepo   { return &fakeProductRepo{s: s} }
func (s *fakeStore) movementRepo() *fakeMovementRepo { return &fakeMovementRepo{s: s} }

func (s *fakeStore) stockOf(productID int64) int64 {
	var total int64
	for _, m := range s.movements {
		if m.ProductID == productID {
			total += m.Delta()
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeProductRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

type fakeProductRepo struct {
	s *fakeStore
}

func (r *fakeProductRepo) Create(product *entity.Product) (int64, error) {
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return 0, domain.ErrDuplicate
		}
	}
	r.s.nextProductID++
	cp := *product
	cp.ID = r.s.nextProductID
	r.s.products[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.ID != product.ID && p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.s.products, id)
	// Cascada: el historial del producto se va con él.
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

func (r *fakeProductRepo) GetWithStock(id int64) (*entity.ProductWithStock, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &entity.ProductWithStock{Product: *p, StockOnHand: r.s.stockOf(id)}, nil
}

func (r *fakeProductRepo) ListWithStock(filter query.ProductFilter, sortBy query.ProductSort, limit int) ([]*entity.ProductWithStock, error) {
	var list []*entity.ProductWithStock
	for _, p := range r.s.products {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.SKUContains != "" && !strings.Contains(strings.ToLower(p.SKU), strings.ToLower(filter.SKUContains)) {
			continue
		}
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		ps := &entity.ProductWithStock{Product: *p, StockOnHand: r.s.stockOf(p.ID)}
		if filter.LowStockOnly && !ps.IsLowStock() {
			continue
		}
		if filter.MaxStockOnHand != nil && ps.StockOnHand > int64(*filter.MaxStockOnHand) {
			continue
		}
		list = append(list, ps)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch sortBy {
		case query.SortStockAsc:
			if a.StockOnHand != b.StockOnHand {
				return a.StockOnHand < b.StockOnHand
			}
		case query.SortStockDesc:
			if a.StockOnHand != b.StockOnHand {
				return a.StockOnHand > b.StockOnHand
			}
		case query.SortNameDesc:
			return strings.ToLower(a.Name) > strings.ToLower(b.Name)
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeProductRepo) ListUpdatedSince(since time.Time) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if !p.UpdatedAt.Before(since) {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeMovementRepo
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

type fakeMovementRepo struct {
	s *fakeStore
}

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) (int64, error) {
	if _, ok := r.s.products[movement.ProductID]; !ok {
		return 0, domain.ErrNotFound
	}
	r.s.nextMovementID++
	cp := *movement
	cp.ID = r.s.nextMovementID
	r.s.movements = append(r.s.movements, &cp)
	return cp.ID, nil
}

func (r *fakeMovementRepo) ListByProduct(productID int64, limit int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeMovementRepo) ListSince(since time.Time) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if !m.CreatedAt.Before(since) {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeMovementRepo) StockOnHand(productID int64) (int64, error) {
	return r.s.stockOf(productID), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeTxRunner
// ──────────────────────────────────────────────────────────────────────────────

var _ usecase.TxRunner = (*fakeTxRunner)(nil)

// fakeTxRunner ejecuta el callback directamente sobre el almacén compartido
// (sin aislamiento transaccional; suficiente para tests unitarios).
type fakeTxRunner struct {
	s *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) error) error {
	return fn(r.s.productRepo(), r.s.movementRepo())
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones de prueba
// ──────────────────────────────────────────────────────────────────────────────

func adminSession() *entity.SessionUser {
	return &entity.SessionUser{UserID: 1, Username: "admin", Role: entity.RoleAdmin}
}

func clerkSession() *entity.SessionUser {
	return &entity.SessionUser{UserID: 2, Username: "clerk", Role: entity.RoleClerk}
}

func viewerSession() *entity.SessionUser {
	return &entity.SessionUser{UserID: 3, Username: "viewer", Role: entity.RoleViewer}
}

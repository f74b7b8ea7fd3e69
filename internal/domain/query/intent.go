// Package query define el modelo de intención de consulta: la unión etiquetada
// que produce el resolutor de lenguaje natural y que consume la ruta de lectura.
package query

import "time"

// ProductSort orden del listado de productos con stock.
type ProductSort string

const (
	SortStockAsc  ProductSort = "STOCK_ASC"
	SortStockDesc ProductSort = "STOCK_DESC"
	SortNameAsc   ProductSort = "NAME_ASC"
	SortNameDesc  ProductSort = "NAME_DESC"
)

// Valid indica si el orden pertenece al conjunto cerrado.
func (s ProductSort) Valid() bool {
	switch s {
	case SortStockAsc, SortStockDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// ProductFilter filtro del listado de productos.
type ProductFilter struct {
	LowStockOnly   bool
	MaxStockOnHand *int // cota superior de stock; nil = sin cota
	SKUContains    string
	NameContains   string
	ActiveOnly     bool
}

// Intent unión sellada de intenciones: ProductsIntent o ChangesIntent.
// El método marcador privado obliga a un type switch exhaustivo en cada
// consumidor; agregar una variante nueva es un cambio verificado en compilación.
type Intent interface{ isIntent() }

// ProductsIntent consulta de productos con su stock derivado.
type ProductsIntent struct {
	Filter ProductFilter
	Sort   ProductSort
	Limit  int // 0 = sin límite
}

func (ProductsIntent) isIntent() {}

// ChangesIntent "qué cambió desde": productos actualizados y movimientos
// registrados a partir del instante Since.
type ChangesIntent struct {
	Since time.Time
}

func (ChangesIntent) isIntent() {}

// DefaultProducts intención por defecto para la consulta vacía: productos
// activos sin filtrar, ordenados por stock ascendente.
func DefaultProducts() ProductsIntent {
	return ProductsIntent{
		Filter: ProductFilter{ActiveOnly: true},
		Sort:   SortStockAsc,
	}
}

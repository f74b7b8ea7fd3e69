package entity

import "time"

// MovementKind tipo de movimiento del ledger.
type MovementKind string

const (
	MovementIN     MovementKind = "IN"     // entrada
	MovementOUT    MovementKind = "OUT"    // salida
	MovementADJUST MovementKind = "ADJUST" // ajuste con signo
)

// Valid indica si el tipo pertenece al conjunto cerrado IN/OUT/ADJUST.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementIN, MovementOUT, MovementADJUST:
		return true
	}
	return false
}

// StockMovement movimiento inmutable del ledger append-only. Una vez insertado
// no se actualiza ni se borra; un error se corrige con un ADJUST compensatorio.
// Para IN y OUT la cantidad se almacena siempre como magnitud positiva; para
// ADJUST conserva su signo (positivo = aumento) y nunca es cero.
type StockMovement struct {
	ID        int64
	ProductID int64
	Kind      MovementKind
	Quantity  int64
	Note      string
	CreatedAt time.Time
}

// Delta contribución con signo del movimiento al stock disponible.
func (m StockMovement) Delta() int64 {
	if m.Kind == MovementOUT {
		return -m.Quantity
	}
	return m.Quantity
}

// SumStock stock disponible como función pura del historial de movimientos.
// Es el mismo cálculo que ejecuta la consulta SQL de agregación; el orden de
// los movimientos no altera el resultado.
func SumStock(movements []StockMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Delta()
	}
	return total
}

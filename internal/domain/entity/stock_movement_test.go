package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-lite/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Delta — contribución con signo de cada tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestDelta_SignoPorTipo(t *testing.T) {
	assert.Equal(t, int64(10), entity.StockMovement{Kind: entity.MovementIN, Quantity: 10}.Delta(),
		"IN suma su cantidad")
	assert.Equal(t, int64(-10), entity.StockMovement{Kind: entity.MovementOUT, Quantity: 10}.Delta(),
		"OUT resta su cantidad")
	assert.Equal(t, int64(-3), entity.StockMovement{Kind: entity.MovementADJUST, Quantity: -3}.Delta(),
		"ADJUST conserva su signo")
	assert.Equal(t, int64(7), entity.StockMovement{Kind: entity.MovementADJUST, Quantity: 7}.Delta(),
		"ADJUST positivo suma")
}

// ──────────────────────────────────────────────────────────────────────────────
// SumStock — el stock es una función pura del historial
// ──────────────────────────────────────────────────────────────────────────────

func TestSumStock_HistorialMixto(t *testing.T) {
	movements := []entity.StockMovement{
		{Kind: entity.MovementIN, Quantity: 50},
		{Kind: entity.MovementIN, Quantity: 30},
		{Kind: entity.MovementOUT, Quantity: 20},
		{Kind: entity.MovementADJUST, Quantity: -5},
	}
	assert.Equal(t, int64(55), entity.SumStock(movements),
		"50 + 30 - 20 - 5 = 55")
}

func TestSumStock_HistorialVacio(t *testing.T) {
	assert.Equal(t, int64(0), entity.SumStock(nil),
		"un producto sin movimientos tiene stock 0")
}

func TestSumStock_OrdenIrrelevante(t *testing.T) {
	a := []entity.StockMovement{
		{Kind: entity.MovementOUT, Quantity: 20},
		{Kind: entity.MovementIN, Quantity: 50},
		{Kind: entity.MovementADJUST, Quantity: -5},
		{Kind: entity.MovementIN, Quantity: 30},
	}
	b := []entity.StockMovement{
		{Kind: entity.MovementIN, Quantity: 30},
		{Kind: entity.MovementADJUST, Quantity: -5},
		{Kind: entity.MovementIN, Quantity: 50},
		{Kind: entity.MovementOUT, Quantity: 20},
	}
	assert.Equal(t, entity.SumStock(a), entity.SumStock(b),
		"la suma no depende del orden del historial")
}

func TestSumStock_PuedeSerNegativo(t *testing.T) {
	movements := []entity.StockMovement{
		{Kind: entity.MovementIN, Quantity: 5},
		{Kind: entity.MovementOUT, Quantity: 8},
	}
	assert.Equal(t, int64(-3), entity.SumStock(movements),
		"el ledger admite stock negativo; se corrige con ADJUST")
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementKind.Valid
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementKind_Valid(t *testing.T) {
	assert.True(t, entity.MovementIN.Valid())
	assert.True(t, entity.MovementOUT.Valid())
	assert.True(t, entity.MovementADJUST.Valid())
	assert.False(t, entity.MovementKind("TRANSFER").Valid())
	assert.False(t, entity.MovementKind("in").Valid(),
		"el tipo es sensible a mayúsculas; la normalización ocurre antes")
}

// ──────────────────────────────────────────────────────────────────────────────
// IsLowStock — regla uniforme de bajo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestIsLowStock(t *testing.T) {
	cases := []struct {
		name         string
		reorderPoint int
		stock        int64
		want         bool
	}{
		{"punto deshabilitado nunca es bajo stock", 0, 0, false},
		{"stock igual al punto es bajo stock", 10, 10, true},
		{"stock bajo el punto es bajo stock", 10, 3, true},
		{"stock sobre el punto no es bajo stock", 10, 11, false},
		{"stock negativo con punto habilitado es bajo stock", 5, -2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := entity.ProductWithStock{
				Product:     entity.Product{ReorderPoint: tc.reorderPoint},
				StockOnHand: tc.stock,
			}
			assert.Equal(t, tc.want, p.IsLowStock())
		})
	}
}

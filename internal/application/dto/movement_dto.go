package dto

import "time"

// RegisterMovementRequest registro de un movimiento de stock.
// Quantity es la cantidad cruda del usuario: para IN/OUT debe ser positiva;
// para ADJUST lleva su signo y no puede ser cero.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Kind      string `json:"kind"` // IN | OUT | ADJUST
	Quantity  int64  `json:"quantity"`
	Note      string `json:"note"`
}

// MovementResponse movimiento registrado, con la cantidad ya normalizada.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangeSummary neto de stock de un producto dentro de una ventana de cambios.
type ChangeSummary struct {
	ProductID int64 `json:"product_id"`
	NetChange int64 `json:"net_change"`
}

// ChangesResponse respuesta de "qué cambió desde": productos actualizados,
// movimientos registrados y el neto por producto.
type ChangesResponse struct {
	SinceEpochMs    int64              `json:"since_epoch_ms"`
	UpdatedProducts []ProductResponse  `json:"updated_products"`
	Movements       []MovementResponse `json:"movements"`
	Summary         []ChangeSummary    `json:"summary"`
}

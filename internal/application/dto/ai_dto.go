package dto

// InterpretRequest cuerpo enviado al servicio remoto de interpretación
// (POST {base}/api/ai/interpret). Los nombres de campo son el contrato del
// endpoint externo; no cambiarlos.
type InterpretRequest struct {
	Query      string `json:"query"`
	NowEpochMs int64  `json:"nowEpochMs"`
	Timezone   string `json:"timezone"`
}

// AIQueryRequest consulta en lenguaje natural del usuario.
type AIQueryRequest struct {
	Query string `json:"query"`
}

// IntentDTO eco de la intención resuelta, para que el cliente muestre qué
// entendió el sistema.
type IntentDTO struct {
	Type           string `json:"type"` // products | changes
	LowStockOnly   bool   `json:"low_stock_only,omitempty"`
	MaxStockOnHand *int   `json:"max_stock_on_hand,omitempty"`
	SKUContains    string `json:"sku_contains,omitempty"`
	NameContains   string `json:"name_contains,omitempty"`
	ActiveOnly     bool   `json:"active_only,omitempty"`
	Sort           string `json:"sort,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	SinceEpochMs   int64  `json:"since_epoch_ms,omitempty"`
}

// AIQueryResponse intención resuelta más su resultado: exactamente uno de
// Products o Changes viene poblado según la variante.
type AIQueryResponse struct {
	Intent   IntentDTO            `json:"intent"`
	Products *ProductListResponse `json:"products,omitempty"`
	Changes  *ChangesResponse     `json:"changes,omitempty"`
}

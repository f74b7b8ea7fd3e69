package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

// Formato de intercambio compartido por ambos intérpretes (endpoint HTTP
// propio y OpenAI). El campo "type" discrimina la variante.

type wireIntent struct {
	Type         string      `json:"type"` // "products" | "changes"
	Filter       *wireFilter `json:"filter,omitempty"`
	Sort         string      `json:"sort,omitempty"`
	Limit        *int        `json:"limit,omitempty"`
	SinceEpochMs int64       `json:"sinceEpochMs,omitempty"`
}

type wireFilter struct {
	LowStockOnly   bool   `json:"lowStockOnly,omitempty"`
	MaxStockOnHand *int   `json:"maxStockOnHand,omitempty"`
	SKUContains    string `json:"skuContains,omitempty"`
	NameContains   string `json:"nameContains,omitempty"`
	ActiveOnly     *bool  `json:"activeOnly,omitempty"` // ausente = true
}

// decodeIntent valida y traduce el JSON del intérprete a la unión tipada.
// Cualquier desviación del contrato (variante desconocida, orden inválido,
// changes sin instante) es un error: el resolutor degradará al fallback.
func decodeIntent(raw []byte) (query.Intent, error) {
	var w wireIntent
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("intención no es JSON válido: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(w.Type)) {
	case "products":
		intent := query.DefaultProducts()
		if w.Filter != nil {
			intent.Filter = query.ProductFilter{
				LowStockOnly:   w.Filter.LowStockOnly,
				MaxStockOnHand: w.Filter.MaxStockOnHand,
				SKUContains:    strings.TrimSpace(w.Filter.SKUContains),
				NameContains:   strings.TrimSpace(w.Filter.NameContains),
				ActiveOnly:     w.Filter.ActiveOnly == nil || *w.Filter.ActiveOnly,
			}
		}
		if w.Sort != "" {
			sort := query.ProductSort(strings.ToUpper(strings.TrimSpace(w.Sort)))
			if !sort.Valid() {
				return nil, fmt.Errorf("orden desconocido: %q", w.Sort)
			}
			intent.Sort = sort
		}
		if w.Limit != nil {
			if *w.Limit < 0 {
				return nil, fmt.Errorf("límite negativo: %d", *w.Limit)
			}
			intent.Limit = *w.Limit
		}
		return intent, nil

	case "changes":
		if w.SinceEpochMs <= 0 {
			return nil, fmt.Errorf("variante changes sin sinceEpochMs")
		}
		return query.ChangesIntent{Since: time.UnixMilli(w.SinceEpochMs)}, nil

	default:
		return nil, fmt.Errorf("variante de intención desconocida: %q", w.Type)
	}
}

package ai

import (
	"regexp"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

// Parser determinista para el conjunto fijo de consultas conocidas. Mantiene
// la app útil aunque el backend de interpretación no esté disponible.
var (
	// "low stock", opcionalmente con cota "under N" en la misma frase.
	lowStockRe = regexp.MustCompile(`(?i)\blow\s*stock\b(?:.*?\bunder\s*(\d+)\b)?`)

	// Formas sinónimas de "qué cambió hoy".
	changedTodayRe = regexp.MustCompile(`(?i)\b(?:what\s*changed\s*today|changed\s*today|today\s*changes)\b`)
)

// ParseLocal intenta reconocer la consulta con los patrones fijos
// (case-insensitive). Devuelve (intent, true) en acierto; (nil, false) para
// que el resolutor caiga al siguiente nivel del pipeline.
func ParseLocal(q string, todayStart time.Time) (query.Intent, bool) {
	if m := lowStockRe.FindStringSubmatch(q); m != nil {
		filter := query.ProductFilter{LowStockOnly: true, ActiveOnly: true}
		if m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil {
				filter.MaxStockOnHand = &n
			}
		}
		return query.ProductsIntent{Filter: filter, Sort: query.SortStockAsc}, true
	}

	if changedTodayRe.MatchString(q) {
		return query.ChangesIntent{Since: todayStart}, true
	}

	return nil, false
}

// Package ai convierte consultas en lenguaje natural en intenciones tipadas.
package ai

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/ports"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
	"github.com/jhoicas/inventario-lite/pkg/logger"
)

// remoteTimeout máximo que se espera al intérprete remoto antes de degradar.
const remoteTimeout = 10 * time.Second

// Resolver pipeline sin estado, evaluado en orden estricto con corto-circuito
// en el primer acierto:
//  1. parser determinista (ParseLocal)
//  2. intérprete remoto (opcional)
//  3. fallback heurístico: búsqueda por nombre con el texto crudo
//
// Resolve nunca devuelve error: un front-end de lenguaje natural degrada a
// "mejor aproximación" en lugar de bloquear al usuario.
type Resolver struct {
	remote   ports.IntentInterpreter // nil = nivel remoto deshabilitado
	loc      *time.Location
	timezone string
	log      *logger.Logger
}

// NewResolver construye el resolutor. timezone es el nombre IANA usado para
// calcular "hoy"; si no carga, se usa la zona local del proceso.
func NewResolver(remote ports.IntentInterpreter, timezone string, log *logger.Logger) *Resolver {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn().Str("timezone", timezone).Err(err).Msg("zona horaria inválida; usando la local")
		loc = time.Local
		timezone = loc.String()
	}
	return &Resolver{remote: remote, loc: loc, timezone: timezone, log: log}
}

// Resolve interpreta rawQuery en el instante now. La consulta vacía corta
// arriba del pipeline con la intención por defecto, antes de cualquier nivel.
func (r *Resolver) Resolve(ctx context.Context, rawQuery string, now time.Time) query.Intent {
	q := strings.TrimSpace(rawQuery)
	if q == "" {
		return query.DefaultProducts()
	}

	if intent, ok := ParseLocal(q, r.todayStart(now)); ok {
		r.log.Debug().Str("query", q).Msg("intención resuelta por el parser local")
		return intent
	}

	fallback := query.ProductsIntent{
		Filter: query.ProductFilter{NameContains: q, ActiveOnly: true},
		Sort:   query.SortNameAsc,
	}
	if r.remote == nil {
		return fallback
	}

	// La llamada remota es de solo lectura: abandonable sin efectos
	// secundarios. El timeout evita que una latencia externa bloquee al caller.
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	intent, err := r.remote.Interpret(ctx, dto.InterpretRequest{
		Query:      q,
		NowEpochMs: now.UnixMilli(),
		Timezone:   r.timezone,
	})
	if err != nil {
		// Falla transitoria: se absorbe y se degrada al fallback; nunca se
		// propaga al usuario.
		r.log.Debug().Err(err).Str("query", q).Msg("intérprete remoto falló; usando fallback")
		return fallback
	}
	return intent
}

// todayStart medianoche del día de now en la zona configurada.
func (r *Resolver) todayStart(now time.Time) time.Time {
	local := now.In(r.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)
}

package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/ports"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
	"github.com/jhoicas/inventario-lite/pkg/logger"
)

// stubInterpreter intérprete remoto de prueba: devuelve una intención fija o
// un error, y cuenta las llamadas.
type stubInterpreter struct {
	intent query.Intent
	err    error
	calls  int
	lastIn dto.InterpretRequest
}

func (s *stubInterpreter) Interpret(_ context.Context, req dto.InterpretRequest) (query.Intent, error) {
	s.calls++
	s.lastIn = req
	if s.err != nil {
		return nil, s.err
	}
	return s.intent, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Niveles del pipeline
// ──────────────────────────────────────────────────────────────────────────────

// Consulta vacía: corta arriba del pipeline con la intención por defecto,
// sin tocar el remoto.
func TestResolve_ConsultaVacia(t *testing.T) {
	remote := &stubInterpreter{}
	r := NewResolver(remote, "UTC", testLogger())

	intent := r.Resolve(context.Background(), "   ", testNow)

	assert.Equal(t, query.DefaultProducts(), intent)
	assert.Zero(t, remote.calls, "la consulta vacía no llega al remoto")
}

// El parser determinista gana: el remoto ni se invoca.
func TestResolve_ParserLocalCortaCircuito(t *testing.T) {
	remote := &stubInterpreter{}
	r := NewResolver(remote, "UTC", testLogger())

	intent := r.Resolve(context.Background(), "show low stock under 5", testNow)

	products, ok := intent.(query.ProductsIntent)
	require.True(t, ok)
	assert.True(t, products.Filter.LowStockOnly)
	require.NotNil(t, products.Filter.MaxStockOnHand)
	assert.Equal(t, 5, *products.Filter.MaxStockOnHand)
	assert.Zero(t, remote.calls, "acierto local no consulta al remoto")
}

// Sin remoto configurado y sin acierto local: fallback de búsqueda por nombre.
func TestResolve_SinRemoto_Fallback(t *testing.T) {
	r := NewResolver(nil, "UTC", testLogger())

	intent := r.Resolve(context.Background(), "blue widgets", testNow)

	products, ok := intent.(query.ProductsIntent)
	require.True(t, ok)
	assert.Equal(t, "blue widgets", products.Filter.NameContains)
	assert.True(t, products.Filter.ActiveOnly)
	assert.Equal(t, query.SortNameAsc, products.Sort)
}

// Remoto responde: su intención se respeta.
func TestResolve_RemotoAcierta(t *testing.T) {
	want := query.ChangesIntent{Since: testNow.Add(-2 * time.Hour)}
	remote := &stubInterpreter{intent: want}
	r := NewResolver(remote, "UTC", testLogger())

	intent := r.Resolve(context.Background(), "what moved in the last two hours", testNow)

	assert.Equal(t, want, intent)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, "what moved in the last two hours", remote.lastIn.Query)
	assert.Equal(t, testNow.UnixMilli(), remote.lastIn.NowEpochMs)
	assert.Equal(t, "UTC", remote.lastIn.Timezone)
}

// Remoto falla: se degrada al fallback, nunca se propaga el error.
func TestResolve_RemotoFalla_Fallback(t *testing.T) {
	remote := &stubInterpreter{err: ports.ErrInterpreterUnavailable}
	r := NewResolver(remote, "UTC", testLogger())

	intent := r.Resolve(context.Background(), "blue widgets", testNow)

	products, ok := intent.(query.ProductsIntent)
	require.True(t, ok)
	assert.Equal(t, "blue widgets", products.Filter.NameContains)
	assert.Equal(t, 1, remote.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Zona horaria
// ──────────────────────────────────────────────────────────────────────────────

// "hoy" se calcula en la zona configurada, no en UTC.
func TestResolve_HoyEnZonaConfigurada(t *testing.T) {
	r := NewResolver(nil, "America/Chicago", testLogger())

	// 03:30 UTC del 10 de marzo = tarde del 9 de marzo en Chicago.
	now := time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC)
	intent := r.Resolve(context.Background(), "what changed today", now)

	changes, ok := intent.(query.ChangesIntent)
	require.True(t, ok)

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, loc), changes.Since,
		"la medianoche es la del día local, no la de UTC")
}

// Zona horaria inválida no rompe el resolutor: cae a la local del proceso.
func TestNewResolver_ZonaInvalida(t *testing.T) {
	r := NewResolver(nil, "Not/AZone", testLogger())
	intent := r.Resolve(context.Background(), "", testNow)
	assert.Equal(t, query.DefaultProducts(), intent)
}

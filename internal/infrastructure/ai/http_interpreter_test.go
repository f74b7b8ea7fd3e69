package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/ports"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

func TestHTTPInterpreter_OK(t *testing.T) {
	var gotPath string
	var gotBody dto.InterpretRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type": "changes", "sinceEpochMs": 1741564800000}`))
	}))
	defer srv.Close()

	interp := NewHTTPInterpreter(srv.URL + "/") // la barra final se tolera

	intent, err := interp.Interpret(context.Background(), dto.InterpretRequest{
		Query: "what changed today", NowEpochMs: 1741600000000, Timezone: "America/Chicago",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/ai/interpret", gotPath)
	assert.Equal(t, "what changed today", gotBody.Query)
	assert.Equal(t, int64(1741600000000), gotBody.NowEpochMs)
	assert.Equal(t, "America/Chicago", gotBody.Timezone)

	changes, ok := intent.(query.ChangesIntent)
	require.True(t, ok)
	assert.Equal(t, int64(1741564800000), changes.Since.UnixMilli())
}

func TestHTTPInterpreter_FallasSonUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"HTTP 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"respuesta malformada", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json at all`))
		}},
		{"variante desconocida", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"type": "orders"}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			interp := NewHTTPInterpreter(srv.URL)
			_, err := interp.Interpret(context.Background(), dto.InterpretRequest{Query: "x"})
			assert.ErrorIs(t, err, ports.ErrInterpreterUnavailable,
				"toda falla se reporta como intérprete no disponible")
		})
	}
}

func TestHTTPInterpreter_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // puerto cerrado

	interp := NewHTTPInterpreter(srv.URL)
	_, err := interp.Interpret(context.Background(), dto.InterpretRequest{Query: "x"})
	assert.ErrorIs(t, err, ports.ErrInterpreterUnavailable)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/ports"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

// Verificar en tiempo de compilación que HTTPInterpreter implementa el puerto.
var _ ports.IntentInterpreter = (*HTTPInterpreter)(nil)

// HTTPInterpreter adaptador que delega la interpretación a un endpoint HTTP
// propio (POST {base}/api/ai/interpret). Usa únicamente net/http: el contrato
// es un JSON pequeño y no amerita un cliente generado.
type HTTPInterpreter struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPInterpreter construye el adaptador. baseURL sin barra final.
func NewHTTPInterpreter(baseURL string) *HTTPInterpreter {
	return &HTTPInterpreter{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// Interpret envía la consulta al endpoint y decodifica la intención. Toda
// falla de red, estado no-2xx o respuesta malformada se reporta como
// ErrInterpreterUnavailable para que el resolutor degrade al fallback.
func (s *HTTPInterpreter) Interpret(ctx context.Context, req dto.InterpretRequest) (query.Intent, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/ai/interpret", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInterpreterUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", ports.ErrInterpreterUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ports.ErrInterpreterUnavailable, resp.StatusCode)
	}

	intent, err := decodeIntent(rawBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInterpreterUnavailable, err)
	}
	return intent, nil
}

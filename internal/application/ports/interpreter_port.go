package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

// ErrInterpreterUnavailable falla transitoria del intérprete remoto (red,
// timeout, respuesta no-2xx o malformada). Nunca llega al usuario: el
// resolutor la absorbe y degrada al siguiente nivel del pipeline.
var ErrInterpreterUnavailable = errors.New("intérprete remoto no disponible")

// IntentInterpreter define el puerto de salida hacia el servicio de
// interpretación estructurada de consultas. Cualquier adaptador (endpoint
// HTTP propio, OpenAI, mock) debe implementar esta interfaz; la aplicación
// solo conoce este contrato (DIP).
//
// El contexto debe llevar un timeout: la llamada es de solo lectura y tiene
// que poder abandonarse sin efectos secundarios.
type IntentInterpreter interface {
	Interpret(ctx context.Context, req dto.InterpretRequest) (query.Intent, error)
}

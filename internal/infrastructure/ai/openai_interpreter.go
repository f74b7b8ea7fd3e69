package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/ports"
	"github.com/jhoicas/inventario-lite/internal/domain/query"
)

// Verificar en tiempo de compilación que OpenAIInterpreter implementa el puerto.
var _ ports.IntentInterpreter = (*OpenAIInterpreter)(nil)

const interpreterPrompt = `You are a query interpreter for an inventory app.
Translate the user's natural-language query into a structured intent.
Rules:
1. type is "products" for inventory listings and "changes" for recent-activity queries.
2. For "changes", sinceEpochMs is REQUIRED: compute it from nowEpochMs and the timezone (e.g. "today" = start of the current day in that timezone).
3. sort is one of STOCK_ASC, STOCK_DESC, NAME_ASC, NAME_DESC.
4. Use lowStockOnly for queries about items running low; add maxStockOnHand only when the user names an explicit threshold.
5. Use nameContains / skuContains for queries that mention a product name or code.
6. Do not invent filters the user did not ask for.

Timezone: %s
nowEpochMs: %d
Query: %s`

// OpenAIInterpreter adaptador del puerto sobre la API Responses de OpenAI con
// salida estructurada: el esquema JSON se genera por reflexión desde wireIntent,
// así el contrato del modelo y el decodificador nunca divergen.
type OpenAIInterpreter struct {
	client *openai.Client
	model  string
}

// NewOpenAIInterpreter construye el adaptador. model vacío usa gpt-4o.
func NewOpenAIInterpreter(apiKey, model string) *OpenAIInterpreter {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = string(shared.ChatModelGPT4o)
	}
	return &OpenAIInterpreter{client: &client, model: model}
}

// Interpret pide al modelo la intención estructurada y la decodifica con el
// mismo decodificador del adaptador HTTP. Cualquier falla se reporta como
// ErrInterpreterUnavailable.
func (s *OpenAIInterpreter) Interpret(ctx context.Context, req dto.InterpretRequest) (query.Intent, error) {
	schemaJSON, err := json.Marshal(generateIntentSchema())
	if err != nil {
		return nil, fmt.Errorf("AI: serializar esquema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("AI: esquema a mapa: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(fmt.Sprintf(interpreterPrompt, req.Timezone, req.NowEpochMs, req.Query)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "inventory_query_intent",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Structured intent for an inventory query"),
				},
			},
		},
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInterpreterUnavailable, err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("%w: respuesta vacía del modelo", ports.ErrInterpreterUnavailable)
	}

	intent, err := decodeIntent([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInterpreterUnavailable, err)
	}
	return intent, nil
}

// generateIntentSchema genera el esquema JSON de wireIntent por reflexión.
func generateIntentSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v wireIntent
	return reflector.Reflect(v)
}

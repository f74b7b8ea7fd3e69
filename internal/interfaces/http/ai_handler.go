package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-lite/internal/application/ai"
	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
)

// AIHandler maneja las consultas en lenguaje natural (protegido).
type AIHandler struct {
	resolver *ai.Resolver
	queryUC  *usecase.QueryUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(resolver *ai.Resolver, queryUC *usecase.QueryUseCase) *AIHandler {
	return &AIHandler{resolver: resolver, queryUC: queryUC}
}

// Query godoc
// @Summary      Consulta de inventario en lenguaje natural
// @Description  Resuelve la consulta a una intención tipada (parser local,
// @Description  intérprete remoto o fallback de búsqueda por nombre) y la
// @Description  ejecuta contra el inventario. La resolución nunca falla: una
// @Description  consulta no entendida degrada a búsqueda por nombre.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIQueryRequest  true  "Consulta"
// @Success      200   {object}  dto.AIQueryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/ai/query [post]
func (h *AIHandler) Query(c *fiber.Ctx) error {
	var in dto.AIQueryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	intent := h.resolver.Resolve(c.UserContext(), in.Query, time.Now())
	out, err := h.queryUC.Execute(GetSession(c), intent)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
)

// MovementHandler maneja el registro y consulta del ledger (protegido).
type MovementHandler struct {
	uc      *usecase.MovementUseCase
	queryUC *usecase.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase, queryUC *usecase.QueryUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, queryUC: queryUC}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.UserContext(), GetSession(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id     path   int  true   "ID del producto"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	out, err := h.uc.ListByProduct(GetSession(c), int64(id), limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Changes godoc
// @Summary      Cambios de inventario desde un instante
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        since_epoch_ms  query  int  true  "Instante inicial (epoch ms)"
// @Success      200  {object}  dto.ChangesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/changes [get]
func (h *MovementHandler) Changes(c *fiber.Ctx) error {
	sinceMs := int64(c.QueryInt("since_epoch_ms", 0))
	if sinceMs <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "since_epoch_ms es requerido", Field: "since_epoch_ms"})
	}
	out, err := h.queryUC.ChangesSince(GetSession(c), time.UnixMilli(sinceMs))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

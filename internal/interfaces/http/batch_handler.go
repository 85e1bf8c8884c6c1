package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// BatchHandler maneja las consultas de solo lectura de lotes. Los lotes se
// crean y mutan únicamente registrando entradas.
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Listar lotes de un producto
// @Tags         batches
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches [get]
func (h *BatchHandler) ListByProduct(c *fiber.Ctx) error {
	batches, err := h.uc.ListByProduct(c.Query("product_id"))
	if err != nil {
		if err == domain.ErrMissingFields {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es obligatorio"})
		}
		if err == domain.ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(batches)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/entry"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// EntryHandler maneja las peticiones HTTP de entradas de stock.
//
// El contrato de respuesta replica el del backend original que consume el
// frontend: successCode 1 (solo entrada) / 2 (lote + entrada), y errorCode
// 0 (cantidad inválida), 1 (producto no existe), 2 (lote nuevo sin fecha de
// vencimiento), siempre con estado 400 y campo "error".
type EntryHandler struct {
	uc *entry.EntryUseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *entry.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Produce      json
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	entries, err := h.uc.GetEntries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToEntryResponse(e))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Create godoc
// @Summary      Registrar una entrada de stock
// @Description  Si el lote (productId + batchNumber) no existe, lo crea; en ese caso expiryDate (MM-DD-YYYY) es obligatoria.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "productId, batchNumber, quantity, expiryDate (condicional)"
// @Success      201   {object}  map[string]interface{}  "successCode 1: data=[entry]; successCode 2: data=[batch, entry]"
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cuerpo inválido"})
	}
	result, err := h.uc.CreateEntry(in)
	if err != nil {
		switch err {
		case domain.ErrMissingFields:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "productId, batchNumber y quantity son obligatorios; expiryDate (MM-DD-YYYY) si el lote es nuevo",
			})
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "errorCode": 0})
		case domain.ErrProductNotFound:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "errorCode": 1})
		case domain.ErrBatchMissingExpiry:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "errorCode": 2})
		case domain.ErrDuplicateBatch:
			// Carrera en la creación del lote: reintentable, el reintento toma
			// la ruta de lote existente.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	switch result.Kind {
	case entry.BatchAndEntry:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"successCode": 2,
			"data":        []any{dto.ToBatchResponse(result.Batch), dto.ToEntryResponse(result.Entry)},
		})
	default:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"successCode": 1,
			"data":        []any{dto.ToEntryResponse(result.Entry)},
		})
	}
}

// Update godoc
// @Summary      Actualizar una entrada (parche crudo)
// @Description  Parche campo a campo; no reconcilia el stock del lote referenciado.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la entrada"
// @Param        body  body  dto.UpdateEntryRequest  true  "campos a modificar"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/entries/{id} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cuerpo inválido"})
	}
	updated, err := h.uc.UpdateEntry(id, in)
	if err != nil {
		if err == domain.ErrEntryNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if err == domain.ErrMissingFields {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "el ID es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(dto.ToEntryResponse(updated))
}

// Delete godoc
// @Summary      Borrar una entrada
// @Description  Con id "all" borra todas las entradas (solo fuera de production). El stock de los lotes no se ajusta.
// @Tags         entries
// @Produce      json
// @Param        id  path  string  true  "ID de la entrada, o 'all'"
// @Success      200  {object}  dto.DeleteEntryResponse
// @Success      201  {object}  dto.DeleteAllEntriesResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "el ID es obligatorio como parámetro"})
	}

	// Escape de desarrollo: el caso de uso rechaza el borrado masivo en production.
	if id == "all" {
		count, err := h.uc.DeleteAllEntries()
		if err != nil {
			if err == domain.ErrForbidden {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(dto.DeleteAllEntriesResponse{DeletedCount: count})
	}

	deletedID, err := h.uc.DeleteEntry(id)
	if err != nil {
		if err == domain.ErrEntryNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(dto.DeleteEntryResponse{ID: deletedID})
}

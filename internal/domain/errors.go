package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrMissingFields      = errors.New("faltan campos obligatorios")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un número entero positivo")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrBatchMissingExpiry = errors.New("el lote no existe, la fecha de vencimiento es obligatoria")
	ErrEntryNotFound      = errors.New("entrada no encontrada")
	ErrDuplicateBatch     = errors.New("el número de lote ya existe para este producto")
	ErrForbidden          = errors.New("operación no permitida en este entorno")
)

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ExpiryDateLayout formato de la fecha de vencimiento en la API (MM-DD-YYYY).
const ExpiryDateLayout = "01-02-2006"

// CreateEntryRequest body para POST /api/entries.
// Quantity acepta número o string numérico en el JSON (decimal.Decimal deserializa
// ambos); la validación de entero positivo la hace el caso de uso.
// ExpiryDate solo es obligatoria cuando el lote aún no existe.
type CreateEntryRequest struct {
	ProductID   string          `json:"productId"`
	BatchNumber string          `json:"batchNumber"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpiryDate  string          `json:"expiryDate,omitempty"`
}

// ParseExpiry interpreta ExpiryDate en formato MM-DD-YYYY.
func (r CreateEntryRequest) ParseExpiry() (time.Time, error) {
	return time.Parse(ExpiryDateLayout, r.ExpiryDate)
}

// UpdateEntryRequest body para PUT /api/entries/:id. Parche crudo campo a campo:
// los campos ausentes no se tocan. No reconcilia el stock del lote.
type UpdateEntryRequest struct {
	ProductID   *string          `json:"productId,omitempty"`
	ProductName *string          `json:"productName,omitempty"`
	BatchNumber *string          `json:"batchNumber,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
}

// ToPatch convierte el request al parche del repositorio.
func (r UpdateEntryRequest) ToPatch() repository.EntryPatch {
	return repository.EntryPatch{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		BatchNumber: r.BatchNumber,
		Quantity:    r.Quantity,
	}
}

// ProductRefDTO snapshot de producto embebido en lotes y entradas.
type ProductRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BatchRefDTO snapshot de lote embebido en cada entrada.
type BatchRefDTO struct {
	Product     ProductRefDTO `json:"product"`
	BatchNumber string        `json:"batchNumber"`
}

// EntryResponse representación de una entrada en la API.
type EntryResponse struct {
	ID        string          `json:"id"`
	Batch     BatchRefDTO     `json:"batch"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BatchResponse representación de un lote en la API.
type BatchResponse struct {
	ID          string          `json:"id"`
	Product     ProductRefDTO   `json:"product"`
	BatchNumber string          `json:"batchNumber"`
	Stock       decimal.Decimal `json:"stock"`
	ExpiryDate  string          `json:"expiryDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DeleteEntryResponse confirmación de borrado individual.
type DeleteEntryResponse struct {
	ID string `json:"id"`
}

// DeleteAllEntriesResponse confirmación de borrado masivo (solo desarrollo).
type DeleteAllEntriesResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ToEntryResponse mapea la entidad a su DTO.
func ToEntryResponse(e *entity.Entry) EntryResponse {
	return EntryResponse{
		ID: e.ID,
		Batch: BatchRefDTO{
			Product:     ProductRefDTO{ID: e.Batch.Product.ID, Name: e.Batch.Product.Name},
			BatchNumber: e.Batch.BatchNumber,
		},
		Quantity:  e.Quantity,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToBatchResponse mapea la entidad a su DTO.
func ToBatchResponse(b *entity.Batch) BatchResponse {
	return BatchResponse{
		ID:          b.ID,
		Product:     ProductRefDTO{ID: b.Product.ID, Name: b.Product.Name},
		BatchNumber: b.BatchNumber,
		Stock:       b.Stock,
		ExpiryDate:  b.ExpiryDate.Format(ExpiryDateLayout),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

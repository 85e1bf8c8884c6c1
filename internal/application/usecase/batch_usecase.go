package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// BatchUseCase consultas de solo lectura sobre lotes. Los lotes se crean y
// mutan únicamente a través del registro de entradas (EntryUseCase).
type BatchUseCase struct {
	batches  repository.BatchRepository
	products repository.ProductRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batches repository.BatchRepository, products repository.ProductRepository) *BatchUseCase {
	return &BatchUseCase{batches: batches, products: products}
}

// ListByProduct lista los lotes de un producto.
func (uc *BatchUseCase) ListByProduct(productID string) ([]dto.BatchResponse, error) {
	if productID == "" {
		return nil, domain.ErrMissingFields
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	batches, err := uc.batches.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.ToBatchResponse(b))
	}
	return out, nil
}

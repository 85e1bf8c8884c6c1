package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
// El número de lote es único por producto (constraint en la BD).
type BatchRepository interface {
	// GetByNumber busca un lote por (producto, número de lote). Devuelve nil si no existe.
	GetByNumber(productID, batchNumber string) (*entity.Batch, error)
	// Create persiste un lote nuevo. Violación del único (product_id, batch_number)
	// se reporta como domain.ErrDuplicateBatch.
	Create(batch *entity.Batch) error
	// IncrementStock aplica el delta sobre el stock directamente en la BD
	// (stock = stock + delta). Atómico frente a incrementos concurrentes sobre el
	// mismo lote. Devuelve el lote con el stock resultante.
	IncrementStock(batchID string, delta decimal.Decimal) (*entity.Batch, error)
	// ListByProduct lista los lotes de un producto.
	ListByProduct(productID string) ([]*entity.Batch, error)
}

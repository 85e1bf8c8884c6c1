package entry

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CreationKind discrimina el resultado de CreateEntry: solo se creó la entrada
// (el lote ya existía) o se crearon lote y entrada.
type CreationKind int

const (
	EntryOnly CreationKind = iota + 1
	BatchAndEntry
)

// CreateEntryResult resultado discriminado de CreateEntry.
// Batch solo viene poblado cuando Kind es BatchAndEntry.
type CreateEntryResult struct {
	Kind  CreationKind
	Batch *entity.Batch
	Entry *entity.Entry
}

// EntryUseCase registra entradas de stock contra lotes: valida la petición,
// crea el lote si no existe y mantiene el contador de stock del lote con
// incrementos atómicos en la BD.
type EntryUseCase struct {
	products repository.ProductRepository
	batches  repository.BatchRepository
	entries  repository.EntryRepository
	env      string
}

// NewEntryUseCase construye el caso de uso. env (APP_ENV) controla el borrado
// masivo: solo se permite fuera de production.
func NewEntryUseCase(
	products repository.ProductRepository,
	batches repository.BatchRepository,
	entries repository.EntryRepository,
	env string,
) *EntryUseCase {
	return &EntryUseCase{products: products, batches: batches, entries: entries, env: env}
}

// CreateEntry registra una entrada de stock.
//
// Orden de validación (corta en el primer fallo, sin efectos secundarios):
//  1. productId, batchNumber y quantity presentes (quantity cero cuenta como ausente).
//  2. quantity entero estrictamente positivo.
//  3. el producto existe en el catálogo.
//  4. si el lote (producto + número) no existe, expiryDate es obligatoria.
//
// Si el lote existe: persiste la entrada y suma quantity al stock del lote
// (delta atómico en la BD). Si no existe: crea el lote con stock = quantity y
// luego la entrada. Dos peticiones concurrentes sobre un lote aún no creado
// pueden tomar ambas la ruta de creación; la segunda recibe ErrDuplicateBatch
// del único (product_id, batch_number) y puede reintentar, ya por la ruta de
// actualización.
func (uc *EntryUseCase) CreateEntry(in dto.CreateEntryRequest) (*CreateEntryResult, error) {
	if in.ProductID == "" || in.BatchNumber == "" || in.Quantity.IsZero() {
		return nil, domain.ErrMissingFields
	}
	if !in.Quantity.IsInteger() || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	batch, err := uc.batches.GetByNumber(in.ProductID, in.BatchNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Lote existente: entrada + incremento de stock.
	if batch != nil {
		newEntry := &entity.Entry{
			ID:        uuid.New().String(),
			Batch:     entity.BatchRef{Product: product.Ref(), BatchNumber: batch.BatchNumber},
			Quantity:  in.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.entries.Create(newEntry); err != nil {
			return nil, err
		}
		if _, err := uc.batches.IncrementStock(batch.ID, in.Quantity); err != nil {
			return nil, err
		}
		return &CreateEntryResult{Kind: EntryOnly, Entry: newEntry}, nil
	}

	// Lote nuevo: requiere fecha de vencimiento válida (MM-DD-YYYY).
	if in.ExpiryDate == "" {
		return nil, domain.ErrBatchMissingExpiry
	}
	expiry, err := in.ParseExpiry()
	if err != nil {
		return nil, domain.ErrBatchMissingExpiry
	}

	newBatch := &entity.Batch{
		ID:          uuid.New().String(),
		Product:     product.Ref(),
		BatchNumber: in.BatchNumber,
		Stock:       in.Quantity,
		ExpiryDate:  expiry,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.batches.Create(newBatch); err != nil {
		return nil, err
	}
	// Un fallo aquí deja un lote sin entradas registradas. Ventana de
	// inconsistencia aceptada: el lote queda consultable y el reintento del
	// caller toma la ruta de lote existente.
	newEntry := &entity.Entry{
		ID:        uuid.New().String(),
		Batch:     newBatch.Ref(),
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.entries.Create(newEntry); err != nil {
		return nil, err
	}
	return &CreateEntryResult{Kind: BatchAndEntry, Batch: newBatch, Entry: newEntry}, nil
}

// GetEntries devuelve todas las entradas en el orden natural del almacén.
func (uc *EntryUseCase) GetEntries() ([]*entity.Entry, error) {
	return uc.entries.List()
}

// UpdateEntry aplica un parche crudo campo a campo sobre una entrada y devuelve
// el registro resultante. No revalida contra el lote ni reconcilia su stock:
// editar o borrar entradas deja el contador del lote como estaba.
func (uc *EntryUseCase) UpdateEntry(id string, in dto.UpdateEntryRequest) (*entity.Entry, error) {
	if id == "" {
		return nil, domain.ErrMissingFields
	}
	existing, err := uc.entries.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrEntryNotFound
	}
	patch := in.ToPatch()
	if patch.IsEmpty() {
		return existing, nil
	}
	updated, err := uc.entries.Update(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrEntryNotFound
	}
	return updated, nil
}

// DeleteEntry borra una entrada por id y devuelve el id borrado. El stock del
// lote referenciado no se ajusta.
func (uc *EntryUseCase) DeleteEntry(id string) (string, error) {
	if id == "" {
		return "", domain.ErrMissingFields
	}
	existing, err := uc.entries.GetByID(id)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", domain.ErrEntryNotFound
	}
	if err := uc.entries.Delete(id); err != nil {
		return "", err
	}
	return id, nil
}

// DeleteAllEntries borra todas las entradas y devuelve cuántas había.
// Escape de desarrollo: en production responde ErrForbidden. Los contadores de
// stock de los lotes no se tocan.
func (uc *EntryUseCase) DeleteAllEntries() (int64, error) {
	if uc.env == "production" {
		return 0, domain.ErrForbidden
	}
	return uc.entries.DeleteAll()
}

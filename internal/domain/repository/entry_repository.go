package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// EntryPatch parche parcial campo a campo para una entrada. Los campos nil no se
// tocan. Es un parche crudo sobre el registro: puede sobreescribir el snapshot o
// la cantidad sin reconciliar el stock del lote (ver EntryUseCase.Update).
type EntryPatch struct {
	ProductID   *string
	ProductName *string
	BatchNumber *string
	Quantity    *decimal.Decimal
}

// IsEmpty indica si el parche no toca ningún campo.
func (p EntryPatch) IsEmpty() bool {
	return p.ProductID == nil && p.ProductName == nil && p.BatchNumber == nil && p.Quantity == nil
}

// EntryRepository define el puerto de persistencia para entradas. Capa de
// persistencia pura: las reglas de negocio viven en el caso de uso.
type EntryRepository interface {
	Create(entry *entity.Entry) error
	GetByID(id string) (*entity.Entry, error)
	// List devuelve todas las entradas en orden natural del almacén (created_at asc).
	List() ([]*entity.Entry, error)
	// Update aplica el parche y devuelve el registro resultante.
	// Devuelve nil si la entrada no existe.
	Update(id string, patch EntryPatch) (*entity.Entry, error)
	Delete(id string) error
	// DeleteAll borra todas las entradas y devuelve cuántas había.
	DeleteAll() (int64, error)
}

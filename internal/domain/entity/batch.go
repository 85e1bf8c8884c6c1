package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote de un producto: número de lote (único por producto),
// fecha de vencimiento y stock acumulado.
//
// Invariante: Stock es igual a la suma de las cantidades de todas las entradas
// aplicadas al lote. Se mantiene con incrementos atómicos en la BD, nunca se
// recalcula ni se reescribe desde la aplicación.
type Batch struct {
	ID          string
	Product     ProductRef
	BatchNumber string
	Stock       decimal.Decimal
	ExpiryDate  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Ref captura el snapshot del lote que guardan las entradas.
func (b *Batch) Ref() BatchRef {
	return BatchRef{Product: b.Product, BatchNumber: b.BatchNumber}
}

// BatchRef snapshot (producto + número de lote) embebido en cada entrada.
// Igual que ProductRef, se captura al escribir y no se actualiza después.
type BatchRef struct {
	Product     ProductRef
	BatchNumber string
}

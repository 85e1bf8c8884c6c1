package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry representa un movimiento de entrada de stock contra un lote.
// Batch es snapshot, no foreign key: la entrada sigue siendo legible aunque el
// producto cambie de nombre después.
type Entry struct {
	ID        string
	Batch     BatchRef
	Quantity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

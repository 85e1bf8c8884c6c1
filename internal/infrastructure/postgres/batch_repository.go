package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL
// (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, product_name, batch_number, stock, expiry_date, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.Product.ID, &b.Product.Name, &b.BatchNumber,
		&b.Stock, &b.ExpiryDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByNumber busca un lote por (producto, número de lote). Devuelve nil si no existe.
func (r *BatchRepo) GetByNumber(productID, batchNumber string) (*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE product_id = $1 AND batch_number = $2`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, productID, batchNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Create persiste un lote nuevo. El único (product_id, batch_number) protege la
// carrera de dos peticiones creando el mismo lote: la segunda recibe ErrDuplicateBatch.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_id, product_name, batch_number, stock, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Product.ID, batch.Product.Name, batch.BatchNumber,
		batch.Stock, batch.ExpiryDate, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBatch
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// IncrementStock suma el delta al stock del lote dentro del propio UPDATE
// (stock = stock + $2): el read-modify-write ocurre en la BD, nunca en la
// aplicación, así dos incrementos concurrentes sobre el mismo lote quedan ambos
// reflejados. Devuelve el lote con el stock resultante, o nil si no existe.
func (r *BatchRepo) IncrementStock(batchID string, delta decimal.Decimal) (*entity.Batch, error) {
	query := `
		UPDATE batches SET stock = stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + batchColumns
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, batchID, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment batch stock: %w", err)
	}
	return b, nil
}

// ListByProduct lista los lotes de un producto, los más próximos a vencer primero.
func (r *BatchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches WHERE product_id = $1 ORDER BY expiry_date ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.Product.ID, &b.Product.Name, &b.BatchNumber,
			&b.Stock, &b.ExpiryDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

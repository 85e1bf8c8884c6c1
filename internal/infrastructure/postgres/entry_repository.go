package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL
// (usable con pool o tx). Persistencia pura, sin reglas de negocio.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador de persistencia para entradas. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `id, product_id, product_name, batch_number, quantity, created_at, updated_at`

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(
		&e.ID, &e.Batch.Product.ID, &e.Batch.Product.Name, &e.Batch.BatchNumber,
		&e.Quantity, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste una entrada con su snapshot de producto y lote.
func (r *EntryRepo) Create(entry *entity.Entry) error {
	query := `
		INSERT INTO entries (id, product_id, product_name, batch_number, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Batch.Product.ID, entry.Batch.Product.Name, entry.Batch.BatchNumber,
		entry.Quantity, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID. Devuelve nil si no existe.
func (r *EntryRepo) GetByID(id string) (*entity.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries WHERE id = $1`
	e, err := scanEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// List devuelve todas las entradas en orden de inserción (created_at asc).
func (r *EntryRepo) List() ([]*entity.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.Batch.Product.ID, &e.Batch.Product.Name, &e.Batch.BatchNumber,
			&e.Quantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update aplica un parche parcial. El SET se arma dinámicamente con squirrel
// según los campos presentes en el parche. Devuelve el registro resultante,
// o nil si la entrada no existe.
func (r *EntryRepo) Update(id string, patch repository.EntryPatch) (*entity.Entry, error) {
	if patch.IsEmpty() {
		return r.GetByID(id)
	}
	b := sq.Update("entries").PlaceholderFormat(sq.Dollar)
	if patch.ProductID != nil {
		b = b.Set("product_id", *patch.ProductID)
	}
	if patch.ProductName != nil {
		b = b.Set("product_name", *patch.ProductName)
	}
	if patch.BatchNumber != nil {
		b = b.Set("batch_number", *patch.BatchNumber)
	}
	if patch.Quantity != nil {
		b = b.Set("quantity", *patch.Quantity)
	}
	b = b.Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + entryColumns)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry update: %w", err)
	}
	e, err := scanEntry(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

// Delete borra una entrada por ID.
func (r *EntryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// DeleteAll borra todas las entradas y devuelve cuántas había.
func (r *EntryRepo) DeleteAll() (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("delete all entries: %w", err)
	}
	return cmd.RowsAffected(), nil
}

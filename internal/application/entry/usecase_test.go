package entry_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/entry"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches   map[string]*entity.Batch // por ID
	createErr error                    // fuerza el error de Create (carrera de lote duplicado)
}

func (f *fakeBatchRepo) GetByNumber(productID, batchNumber string) (*entity.Batch, error) {
	for _, b := range f.batches {
		if b.Product.ID == productID && b.BatchNumber == batchNumber {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBatchRepo) Create(batch *entity.Batch) error {
	if f.createErr != nil {
		return f.createErr
	}
	if existing, _ := f.GetByNumber(batch.Product.ID, batch.BatchNumber); existing != nil {
		return domain.ErrDuplicateBatch
	}
	f.batches[batch.ID] = batch
	return nil
}

func (f *fakeBatchRepo) IncrementStock(batchID string, delta decimal.Decimal) (*entity.Batch, error) {
	b, ok := f.batches[batchID]
	if !ok {
		return nil, nil
	}
	b.Stock = b.Stock.Add(delta)
	b.UpdatedAt = time.Now()
	return b, nil
}

func (f *fakeBatchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.batches {
		if b.Product.ID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeEntryRepo struct {
	entries []*entity.Entry
}

func (f *fakeEntryRepo) Create(e *entity.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeEntryRepo) GetByID(id string) (*entity.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) List() ([]*entity.Entry, error) {
	return f.entries, nil
}

func (f *fakeEntryRepo) Update(id string, patch repository.EntryPatch) (*entity.Entry, error) {
	e, _ := f.GetByID(id)
	if e == nil {
		return nil, nil
	}
	if patch.ProductID != nil {
		e.Batch.Product.ID = *patch.ProductID
	}
	if patch.ProductName != nil {
		e.Batch.Product.Name = *patch.ProductName
	}
	if patch.BatchNumber != nil {
		e.Batch.BatchNumber = *patch.BatchNumber
	}
	if patch.Quantity != nil {
		e.Quantity = *patch.Quantity
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEntryRepo) Delete(id string) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeEntryRepo) DeleteAll() (int64, error) {
	n := int64(len(f.entries))
	f.entries = nil
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID   = "0d4b1c1e-0000-4000-8000-000000000001"
	productName = "Amoxicilina 500mg"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// newUseCase arma el caso de uso con un producto conocido en el catálogo.
func newUseCase(t *testing.T, env string) (*entry.EntryUseCase, *fakeBatchRepo, *fakeEntryRepo) {
	t.Helper()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, Name: productName},
	}}
	batches := &fakeBatchRepo{batches: map[string]*entity.Batch{}}
	entries := &fakeEntryRepo{}
	return entry.NewEntryUseCase(products, batches, entries, env), batches, entries
}

func createReq(quantity decimal.Decimal, expiry string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		ProductID:   productID,
		BatchNumber: "L-001",
		Quantity:    quantity,
		ExpiryDate:  expiry,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateEntry: ruta de creación de lote
// ──────────────────────────────────────────────────────────────────────────────

// Lote inexistente con fecha de vencimiento: se crean lote (stock = cantidad)
// y entrada, en ese orden, con snapshot del producto en ambos.
func TestCreateEntry_LoteNuevo(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	result, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, entry.BatchAndEntry, result.Kind)
	require.NotNil(t, result.Batch)
	require.NotNil(t, result.Entry)

	// Lote: stock inicial = cantidad, snapshot del producto, vencimiento parseado
	assert.True(t, result.Batch.Stock.Equal(dec(10)), "el stock inicial debe ser la cantidad")
	assert.Equal(t, productID, result.Batch.Product.ID)
	assert.Equal(t, productName, result.Batch.Product.Name)
	assert.Equal(t, "L-001", result.Batch.BatchNumber)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), result.Batch.ExpiryDate)

	// Entrada: snapshot del lote recién creado
	assert.Equal(t, "L-001", result.Entry.Batch.BatchNumber)
	assert.Equal(t, productName, result.Entry.Batch.Product.Name)
	assert.True(t, result.Entry.Quantity.Equal(dec(10)))

	assert.Len(t, batches.batches, 1)
	assert.Len(t, entries.entries, 1)
}

// Lote inexistente sin fecha de vencimiento: no se crea nada.
func TestCreateEntry_LoteNuevoSinVencimiento(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	result, err := uc.CreateEntry(createReq(dec(10), ""))
	assert.ErrorIs(t, err, domain.ErrBatchMissingExpiry)
	assert.Nil(t, result)
	assert.Empty(t, batches.batches)
	assert.Empty(t, entries.entries)
}

// Fecha con formato inválido cuenta como ausente (se exige MM-DD-YYYY).
func TestCreateEntry_VencimientoInvalido(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	result, err := uc.CreateEntry(createReq(dec(10), "2025-12-31"))
	assert.ErrorIs(t, err, domain.ErrBatchMissingExpiry)
	assert.Nil(t, result)
	assert.Empty(t, batches.batches)
	assert.Empty(t, entries.entries)
}

// Carrera: dos peticiones toman la ruta de creación y el único de la BD rechaza
// la segunda. El error pasa tal cual (reintentable) y no se persiste entrada.
func TestCreateEntry_CarreraLoteDuplicado(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")
	batches.createErr = domain.ErrDuplicateBatch

	result, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	assert.ErrorIs(t, err, domain.ErrDuplicateBatch)
	assert.Nil(t, result)
	assert.Empty(t, entries.entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateEntry: ruta de lote existente
// ──────────────────────────────────────────────────────────────────────────────

// Escenario completo: primera entrada crea el lote (stock 10); la segunda, sin
// fecha de vencimiento, solo suma stock (15) y deja dos entradas contra L-001.
func TestCreateEntry_LoteExistenteSumaStock(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	first, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)
	require.Equal(t, entry.BatchAndEntry, first.Kind)

	second, err := uc.CreateEntry(createReq(dec(5), ""))
	require.NoError(t, err)

	assert.Equal(t, entry.EntryOnly, second.Kind)
	assert.Nil(t, second.Batch, "la ruta de lote existente no devuelve lote")
	require.NotNil(t, second.Entry)

	stored := batches.batches[first.Batch.ID]
	assert.True(t, stored.Stock.Equal(dec(15)), "stock = 10 + 5")
	require.Len(t, entries.entries, 2)
	for _, e := range entries.entries {
		assert.Equal(t, "L-001", e.Batch.BatchNumber)
	}
}

// Sin idempotencia: repetir la misma petición duplica entradas y stock, a propósito.
func TestCreateEntry_NoEsIdempotente(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	first, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)

	_, err = uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)
	_, err = uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)

	assert.True(t, batches.batches[first.Batch.ID].Stock.Equal(dec(30)))
	assert.Len(t, entries.entries, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateEntry: validaciones (cortan antes de cualquier mutación)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateEntry_CamposObligatorios(t *testing.T) {
	cases := []struct {
		name string
		in   dto.CreateEntryRequest
	}{
		{"sin productId", dto.CreateEntryRequest{BatchNumber: "L-001", Quantity: dec(5)}},
		{"sin batchNumber", dto.CreateEntryRequest{ProductID: productID, Quantity: dec(5)}},
		{"sin quantity", dto.CreateEntryRequest{ProductID: productID, BatchNumber: "L-001"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, batches, entries := newUseCase(t, "development")
			result, err := uc.CreateEntry(tc.in)
			assert.ErrorIs(t, err, domain.ErrMissingFields)
			assert.Nil(t, result)
			assert.Empty(t, batches.batches)
			assert.Empty(t, entries.entries)
		})
	}
}

func TestCreateEntry_CantidadInvalida(t *testing.T) {
	cases := []struct {
		name     string
		quantity decimal.Decimal
	}{
		{"negativa", dec(-2)},
		{"no entera", decimal.NewFromFloat(2.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, batches, entries := newUseCase(t, "development")
			result, err := uc.CreateEntry(createReq(tc.quantity, "01-01-2026"))
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			assert.Nil(t, result)
			assert.Empty(t, batches.batches)
			assert.Empty(t, entries.entries)
		})
	}
}

func TestCreateEntry_ProductoNoExiste(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	in := createReq(dec(3), "01-01-2026")
	in.ProductID = "producto-desconocido"

	result, err := uc.CreateEntry(in)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, result)
	assert.Empty(t, batches.batches)
	assert.Empty(t, entries.entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetEntries / UpdateEntry / DeleteEntry
// ──────────────────────────────────────────────────────────────────────────────

func TestGetEntries_DevuelveTodas(t *testing.T) {
	uc, _, _ := newUseCase(t, "development")

	_, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)
	_, err = uc.CreateEntry(createReq(dec(5), ""))
	require.NoError(t, err)

	list, err := uc.GetEntries()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateEntry_NoExiste(t *testing.T) {
	uc, _, _ := newUseCase(t, "development")

	_, err := uc.UpdateEntry("no-existe", dto.UpdateEntryRequest{})
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

// El parche es crudo: sobreescribe cantidad (y snapshot si se pide) sin tocar
// el stock del lote. La brecha de reconciliación es comportamiento esperado.
func TestUpdateEntry_ParcheCrudoNoReconciliaStock(t *testing.T) {
	uc, batches, _ := newUseCase(t, "development")

	created, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)

	newQty := dec(999)
	newName := "Nombre editado"
	updated, err := uc.UpdateEntry(created.Entry.ID, dto.UpdateEntryRequest{
		Quantity:    &newQty,
		ProductName: &newName,
	})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec(999)))
	assert.Equal(t, "Nombre editado", updated.Batch.Product.Name)

	// El contador del lote sigue en 10
	assert.True(t, batches.batches[created.Batch.ID].Stock.Equal(dec(10)))
}

func TestUpdateEntry_ParcheVacioDevuelveRegistroActual(t *testing.T) {
	uc, _, _ := newUseCase(t, "development")

	created, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)

	updated, err := uc.UpdateEntry(created.Entry.ID, dto.UpdateEntryRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.Entry.ID, updated.ID)
	assert.True(t, updated.Quantity.Equal(dec(10)))
}

func TestDeleteEntry_IDObligatorio(t *testing.T) {
	uc, _, _ := newUseCase(t, "development")

	_, err := uc.DeleteEntry("")
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestDeleteEntry_NoExiste(t *testing.T) {
	uc, _, _ := newUseCase(t, "development")

	_, err := uc.DeleteEntry("no-existe")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestDeleteEntry_DevuelveIDBorrado(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	created, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)

	deletedID, err := uc.DeleteEntry(created.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Entry.ID, deletedID)
	assert.Empty(t, entries.entries)

	// Borrar la entrada no ajusta el stock del lote
	assert.True(t, batches.batches[created.Batch.ID].Stock.Equal(dec(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteAllEntries (escape de desarrollo)
// ──────────────────────────────────────────────────────────────────────────────

// Vacía el almacén de entradas y deja intactos los contadores de stock.
func TestDeleteAllEntries_EnDesarrollo(t *testing.T) {
	uc, batches, entries := newUseCase(t, "development")

	created, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)
	_, err = uc.CreateEntry(createReq(dec(5), ""))
	require.NoError(t, err)

	count, err := uc.DeleteAllEntries()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Empty(t, entries.entries)
	assert.True(t, batches.batches[created.Batch.ID].Stock.Equal(dec(15)))
}

func TestDeleteAllEntries_BloqueadoEnProduction(t *testing.T) {
	uc, _, entries := newUseCase(t, "production")

	_, err := uc.CreateEntry(createReq(dec(10), "12-31-2025"))
	require.NoError(t, err)

	_, err = uc.DeleteAllEntries()
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, entries.entries, 1, "no debe borrar nada")
}

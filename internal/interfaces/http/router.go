package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/entry"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EntryUC   *entry.EntryUseCase
	ProductUC *usecase.ProductUseCase
	BatchUC   *usecase.BatchUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Entradas de stock
	entries := api.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Get("/", entryHandler.List)
	entries.Post("/", entryHandler.Create)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)

	// Catálogo de productos (solo lectura)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Lotes (solo lectura)
	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Get("/", batchHandler.ListByProduct)
}

package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de consulta del catálogo de productos.
// Solo lectura: el catálogo se crea y mantiene por fuera de este servicio.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}

package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase consultas de solo lectura sobre el catálogo de productos.
// El catálogo se administra por fuera de este servicio.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductResponse representación de un producto del catálogo (solo lectura).
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToProductResponse mapea la entidad a su DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

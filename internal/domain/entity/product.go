package entity

import "time"

// Product representa un producto del catálogo. El catálogo se administra por fuera
// de este servicio; aquí solo se consulta (id + nombre).
type Product struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductRef es la copia inmutable (id + nombre) que lotes y entradas guardan del
// producto al momento de escribirse. Un rename posterior del producto no se propaga:
// es registro histórico, no referencia viva.
type ProductRef struct {
	ID   string
	Name string
}

// Ref captura el snapshot del producto.
func (p *Product) Ref() ProductRef {
	return ProductRef{ID: p.ID, Name: p.Name}
}

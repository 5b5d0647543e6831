package repository

import "github.com/jmarulo/salesledger-api/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas.
// Las ventas son de solo inserción: no hay Update ni Delete.
type SaleRepository interface {
	// Create persiste la cabecera de la venta.
	Create(sale *entity.Sale) error
	// CreateItem persiste una línea de venta con su snapshot de producto.
	CreateItem(item *entity.SaleItem) error
	// List retorna las ventas con sus líneas, más recientes primero.
	List() ([]*entity.Sale, error)
}

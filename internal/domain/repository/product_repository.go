package repository

import "github.com/jmarulo/salesledger-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetForUpdate y DecrementStock solo tienen sentido dentro de una transacción
// (repositorio atado a una tx vía TxRunner).
type ProductRepository interface {
	// Create persiste un producto; retorna domain.ErrDuplicateCode si el código ya existe.
	Create(product *entity.Product) error
	// GetByID retorna nil, nil si no existe.
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE)
	// para que descuentos concurrentes sobre el mismo producto se serialicen.
	// Retorna nil, nil si no existe.
	GetForUpdate(id string) (*entity.Product, error)
	// DecrementStock descuenta stock. Llamar solo tras GetForUpdate en la misma
	// transacción, con suficiencia ya verificada por el llamador.
	DecrementStock(id string, quantity int) error
	Update(product *entity.Product) error
	Delete(id string) error
	// List retorna todos los productos ordenados por nombre.
	List() ([]*entity.Product, error)
	Count() (int, error)
}

package repository

import "github.com/jmarulo/salesledger-api/internal/domain/entity"

// LocationRepository puerto de persistencia para bodegas/puntos de venta.
type LocationRepository interface {
	// Create persiste una bodega; retorna domain.ErrDuplicateCode si el código ya existe.
	Create(location *entity.Location) error
	Update(location *entity.Location) error
	Delete(id string) error
	// List retorna todas las bodegas ordenadas por nombre.
	List() ([]*entity.Location, error)
}

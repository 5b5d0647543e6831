package repository

import "github.com/jmarulo/salesledger-api/internal/domain/entity"

// SalesmanRepository puerto de persistencia para vendedores.
type SalesmanRepository interface {
	// Create persiste un vendedor; retorna domain.ErrDuplicateCode si el código ya existe.
	Create(salesman *entity.Salesman) error
	Update(salesman *entity.Salesman) error
	Delete(id string) error
	// List retorna todos los vendedores ordenados por nombre.
	List() ([]*entity.Salesman, error)
}

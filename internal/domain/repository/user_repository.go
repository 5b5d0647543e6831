package repository

import "github.com/jmarulo/salesledger-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	// Create persiste un usuario; retorna domain.ErrEmailAlreadyExists si el email ya existe.
	Create(user *entity.User) error
	// GetByID retorna nil, nil si no existe.
	GetByID(id string) (*entity.User, error)
	// GetByEmail retorna nil, nil si no existe. El email debe llegar ya normalizado.
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// List retorna todos los usuarios, más recientes primero.
	List() ([]*entity.User, error)
	// Delete elimina el usuario; sus sesiones caen en cascada por FK.
	Delete(id string) error
	Count() (int, error)
}

package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmarulo/salesledger-api/internal/application/auth"
	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (listado y altas solo admin;
// actualización parcial para el propio usuario o un admin).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// List retorna todos los usuarios, más recientes primero.
func (uc *UserUseCase) List() (*dto.UserListResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

// Create da de alta un usuario con el rol indicado (user por defecto).
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*entity.User, error) {
	email := auth.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !auth.IsValidEmail(email) || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update aplica una actualización parcial. asAdmin gobierna si el cambio de
// rol se aplica: la decisión de privilegio viene del boundary, no de aquí.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest, asAdmin bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}

	changed := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		user.Name = name
		changed = true
	}
	if in.Role != nil && asAdmin {
		if !entity.IsValidRole(*in.Role) {
			return domain.ErrInvalidInput
		}
		user.Role = *in.Role
		changed = true
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashear password: %w", err)
		}
		user.PasswordHash = string(hash)
		changed = true
	}
	if !changed {
		return domain.ErrInvalidInput
	}
	return uc.userRepo.Update(user)
}

// Delete elimina el usuario; la FK borra sus sesiones en cascada.
func (uc *UserUseCase) Delete(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.userRepo.Delete(id)
}

package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole indica si el rol es uno de los permitidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string // normalizado en minúsculas, único
	Name         string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Role         string // admin, user
	CreatedAt    time.Time
}

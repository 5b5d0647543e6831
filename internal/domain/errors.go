package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("token inválido")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicateCode      = errors.New("el código ya existe")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrForbidden          = errors.New("acceso denegado")
)

package entity

import "time"

// Session representa una sesión autenticada con token opaco.
// Token almacena el digest SHA-256 en hex del token entregado al cliente;
// filas anteriores a la migración pueden contener todavía el token en claro.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt *time.Time // NULL solo en sesiones legacy, se rellena al autenticar
}

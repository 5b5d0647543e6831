// Package token genera tokens opacos de sesión y su digest de almacenamiento.
// El token crudo se entrega al cliente una única vez; en la base de datos
// solo se persiste el SHA-256 en hex, de modo que una fuga de la tabla de
// sesiones no revela credenciales utilizables.
package token

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// New genera un token opaco aleatorio (UUID v4 sobre fuente criptográfica).
func New() string {
	return uuid.New().String()
}

// Hash devuelve el digest SHA-256 en hex del token crudo. Es la clave con la
// que se busca y almacena la sesión.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

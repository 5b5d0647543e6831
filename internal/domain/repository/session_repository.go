package repository

import (
	"time"

	"github.com/jmarulo/salesledger-api/internal/domain/entity"
)

// SessionRepository puerto de persistencia para sesiones.
type SessionRepository interface {
	Create(session *entity.Session) error
	// GetWithUser busca una sesión por digest o por token legacy en claro,
	// junto con su usuario dueño. Retorna nil, nil, nil si no hay coincidencia.
	GetWithUser(tokenHash, rawToken string) (*entity.Session, *entity.User, error)
	// UpdateToken reescribe la clave de la sesión (migración legacy -> hash).
	// Retorna domain.ErrDuplicateCode si la nueva clave ya existe (colisión).
	UpdateToken(oldToken, newToken string) error
	UpdateExpiry(token string, expiresAt time.Time) error
	// Delete es idempotente: no falla si la sesión ya no existe.
	Delete(token string) error
	// DeleteExpired elimina todas las sesiones vencidas (barrido oportunista).
	DeleteExpired() error
}

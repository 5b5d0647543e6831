package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
// La columna token guarda el SHA-256 en hex; filas legacy aún pueden tener el
// token en claro hasta que la migración-en-lectura las reescriba.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de persistencia para sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create persiste una sesión nueva (clave ya hasheada).
func (r *SessionRepo) Create(session *entity.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(context.Background(), query,
		session.Token, session.UserID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetWithUser busca la sesión por digest o por token legacy en claro, con su
// usuario dueño. Retorna nil, nil, nil si no hay coincidencia.
func (r *SessionRepo) GetWithUser(tokenHash, rawToken string) (*entity.Session, *entity.User, error) {
	query := `
		SELECT s.token, s.user_id, s.created_at, s.expires_at,
		       u.id, u.email, u.name, u.password_hash, u.role, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 OR s.token = $2
		LIMIT 1`
	var s entity.Session
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, tokenHash, rawToken).Scan(
		&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt,
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get session: %w", err)
	}
	return &s, &u, nil
}

// UpdateToken reescribe la clave de la sesión (migración legacy -> hash).
func (r *SessionRepo) UpdateToken(oldToken, newToken string) error {
	query := `UPDATE sessions SET token = $1 WHERE token = $2`
	_, err := r.pool.Exec(context.Background(), query, newToken, oldToken)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update session token: %w", err)
	}
	return nil
}

// UpdateExpiry fija la expiración de la sesión (backfill de filas legacy).
func (r *SessionRepo) UpdateExpiry(token string, expiresAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $1 WHERE token = $2`
	_, err := r.pool.Exec(context.Background(), query, expiresAt, token)
	if err != nil {
		return fmt.Errorf("update session expiry: %w", err)
	}
	return nil
}

// Delete elimina la sesión; no falla si ya no existe.
func (r *SessionRepo) Delete(token string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired elimina todas las sesiones vencidas (barrido oportunista).
func (r *SessionRepo) DeleteExpired() error {
	query := `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= NOW()`
	_, err := r.pool.Exec(context.Background(), query)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}

package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
	"github.com/jmarulo/salesledger-api/pkg/logger"
	"github.com/jmarulo/salesledger-api/pkg/token"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthUseCase casos de uso de autenticación: signup, login, validación de
// sesión y revocación. Las sesiones usan tokens opacos: el cliente recibe el
// token crudo una sola vez y la base de datos solo guarda su SHA-256.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	ttl         time.Duration
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. ttl es la vigencia de cada sesión emitida.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, ttl time.Duration, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, ttl: ttl, log: log}
}

// NormalizeEmail recorta espacios y pasa a minúsculas; los emails se comparan
// y persisten siempre normalizados.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail valida el formato del email (ya normalizado o no).
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(NormalizeEmail(email))
}

// Signup crea un usuario con rol user, hashea el password con bcrypt y abre
// sesión de inmediato. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !IsValidEmail(email) || len(in.Password) < 6 {
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
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	raw, err := uc.issueSession(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toUserResponse(user), Token: raw}, nil
}

// Login verifica email/password y abre sesión. Email inexistente y password
// incorrecto producen el mismo error (domain.ErrInvalidCredentials) para no
// permitir enumeración de usuarios.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	raw, err := uc.issueSession(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toUserResponse(user), Token: raw}, nil
}

// Authenticate resuelve el token crudo presentado a su usuario. Antes de la
// búsqueda barre las sesiones vencidas (barrido oportunista, acota el
// crecimiento de la tabla sin proceso de fondo). Soporta exactamente un
// fallback legacy: si no hay coincidencia por hash pero una fila guarda el
// token en claro, autentica y reescribe la clave al hash en el acto,
// rellenando la expiración si falta.
func (uc *AuthUseCase) Authenticate(rawToken string) (*entity.User, error) {
	raw := strings.TrimSpace(rawToken)
	if raw == "" {
		return nil, domain.ErrInvalidToken
	}
	if err := uc.sessionRepo.DeleteExpired(); err != nil {
		return nil, fmt.Errorf("barrer sesiones vencidas: %w", err)
	}

	hash := token.Hash(raw)
	session, user, err := uc.sessionRepo.GetWithUser(hash, raw)
	if err != nil {
		return nil, fmt.Errorf("buscar sesión: %w", err)
	}
	if session == nil {
		return nil, domain.ErrInvalidToken
	}

	now := time.Now()
	if session.ExpiresAt != nil && !session.ExpiresAt.After(now) {
		// El barrido puede perder esta carrera; borrar antes de responder.
		_ = uc.sessionRepo.Delete(session.Token)
		return nil, domain.ErrSessionExpired
	}

	if session.Token == raw {
		// Coincidencia legacy en claro: migrar la clave al hash (una sola vez).
		if err := uc.sessionRepo.UpdateToken(raw, hash); err != nil {
			if errors.Is(err, domain.ErrDuplicateCode) {
				// Colisión de hash con otra sesión: se descarta la fila legacy
				// y la petición sigue autenticada.
				uc.log.Warn().Str("user_id", session.UserID).Msg("colisión de hash al migrar sesión legacy; se elimina la fila en claro")
				_ = uc.sessionRepo.Delete(raw)
			} else {
				return nil, fmt.Errorf("migrar sesión legacy: %w", err)
			}
		}
		session.Token = hash
	}

	if session.ExpiresAt == nil {
		expiresAt := now.Add(uc.ttl)
		if err := uc.sessionRepo.UpdateExpiry(session.Token, expiresAt); err != nil {
			return nil, fmt.Errorf("fijar expiración de sesión: %w", err)
		}
		session.ExpiresAt = &expiresAt
	}

	return user, nil
}

// Revoke elimina la sesión del token presentado. Es idempotente: revocar un
// token ya revocado no es un error.
func (uc *AuthUseCase) Revoke(rawToken string) error {
	raw := strings.TrimSpace(rawToken)
	if raw == "" {
		return nil
	}
	if err := uc.sessionRepo.Delete(token.Hash(raw)); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}

// issueSession genera el token crudo, persiste solo su hash y retorna el crudo.
func (uc *AuthUseCase) issueSession(userID string) (string, error) {
	raw := token.New()
	now := time.Now()
	expiresAt := now.Add(uc.ttl)
	session := &entity.Session{
		Token:     token.Hash(raw),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: &expiresAt,
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return "", fmt.Errorf("crear sesión: %w", err)
	}
	return raw, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarulo/salesledger-api/internal/application/auth"
	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/pkg/logger"
	"github.com/jmarulo/salesledger-api/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session // por clave (hash o token legacy en claro)
	users    *fakeUserRepo
}

func newFakeSessionRepo(users *fakeUserRepo) *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session), users: users}
}

func (r *fakeSessionRepo) Create(session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) GetWithUser(tokenHash, rawToken string) (*entity.Session, *entity.User, error) {
	r.mu.Lock()
	s, ok := r.sessions[tokenHash]
	if !ok {
		s, ok = r.sessions[rawToken]
	}
	if !ok {
		r.mu.Unlock()
		return nil, nil, nil
	}
	cp := *s
	r.mu.Unlock()
	user, err := r.users.GetByID(cp.UserID)
	return &cp, user, err
}

func (r *fakeSessionRepo) UpdateToken(oldToken, newToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[newToken]; exists {
		return domain.ErrDuplicateCode
	}
	s, ok := r.sessions[oldToken]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.sessions, oldToken)
	s.Token = newToken
	r.sessions[newToken] = s
	return nil
}

func (r *fakeSessionRepo) UpdateExpiry(tok string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[tok]
	if !ok {
		return domain.ErrNotFound
	}
	s.ExpiresAt = &expiresAt
	return nil
}

func (r *fakeSessionRepo) Delete(tok string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tok)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for k, s := range r.sessions {
		if s.ExpiresAt != nil && !s.ExpiresAt.After(now) {
			delete(r.sessions, k)
		}
	}
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *fakeSessionRepo) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[key]
	return ok
}

func newTestUseCase(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo(users)
	uc := auth.NewAuthUseCase(users, sessions, 168*time.Hour, logger.Nop())
	return uc, users, sessions
}

func signup(t *testing.T, uc *auth.AuthUseCase) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Signup(dto.SignupRequest{
		Email:    "ana@example.com",
		Password: "secreta1",
		Name:     "Ana",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Signup y Login
// ──────────────────────────────────────────────────────────────────────────────

// El signup crea el usuario con rol user y entrega un token que autentica.
func TestSignup_CreaUsuarioYSesion(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)

	out := signup(t, uc)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.NotEmpty(t, out.Token)

	user, err := uc.Authenticate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, user.ID)
	assert.Equal(t, 1, sessions.count())
}

// El token crudo nunca se persiste: solo existe su hash en el repositorio.
func TestSignup_SoloSePersisteElHash(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)

	out := signup(t, uc)
	assert.False(t, sessions.has(out.Token), "el token crudo no debe estar almacenado")
	assert.True(t, sessions.has(token.Hash(out.Token)), "debe almacenarse el SHA-256 del token")
}

// El email se normaliza: el login acepta mayúsculas y espacios.
func TestLogin_EmailNormalizado(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	signup(t, uc)

	out, err := uc.Login(dto.LoginRequest{Email: "  ANA@Example.COM ", Password: "secreta1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

// Email inexistente y password incorrecto producen exactamente el mismo error.
func TestLogin_FalloUniforme(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	signup(t, uc)

	_, errNoUser := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "secreta1"})
	_, errBadPass := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})

	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errNoUser, errBadPass)
}

// Registrar dos veces el mismo email falla con ErrEmailAlreadyExists.
func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	signup(t, uc)

	_, err := uc.Signup(dto.SignupRequest{Email: "ana@example.com", Password: "otra123", Name: "Ana 2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Entradas inválidas se rechazan antes de tocar el repositorio.
func TestSignup_Validacion(t *testing.T) {
	uc, users, _ := newTestUseCase(t)

	cases := []dto.SignupRequest{
		{Email: "", Password: "secreta1", Name: "Ana"},
		{Email: "ana@example.com", Password: "", Name: "Ana"},
		{Email: "ana@example.com", Password: "secreta1", Name: "   "},
		{Email: "no-es-email", Password: "secreta1", Name: "Ana"},
		{Email: "ana@example.com", Password: "corta", Name: "Ana"},
	}
	for _, in := range cases {
		_, err := uc.Signup(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	n, _ := users.Count()
	assert.Zero(t, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate
// ──────────────────────────────────────────────────────────────────────────────

// Un token desconocido o vacío es inválido.
func TestAuthenticate_TokenInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Authenticate("")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.Authenticate("token-que-no-existe")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

// Una sesión vencida responde ErrSessionExpired y desaparece del almacén.
func TestAuthenticate_SesionVencida(t *testing.T) {
	uc, users, sessions := newTestUseCase(t)

	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}))
	raw := "token-vencido"
	past := time.Now().Add(-time.Minute)
	require.NoError(t, sessions.Create(&entity.Session{
		Token:     token.Hash(raw),
		UserID:    "u1",
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: &past,
	}))

	_, err := uc.Authenticate(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "el barrido elimina la sesión antes de la búsqueda")
	assert.Zero(t, sessions.count())
}

// Una sesión legacy (token en claro) autentica y queda migrada al hash.
func TestAuthenticate_MigraSesionLegacy(t *testing.T) {
	uc, users, sessions := newTestUseCase(t)

	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}))
	raw := "token-legacy-en-claro"
	future := time.Now().Add(time.Hour)
	require.NoError(t, sessions.Create(&entity.Session{
		Token:     raw,
		UserID:    "u1",
		CreatedAt: time.Now(),
		ExpiresAt: &future,
	}))

	user, err := uc.Authenticate(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	assert.False(t, sessions.has(raw), "la fila en claro debe desaparecer")
	assert.True(t, sessions.has(token.Hash(raw)), "la clave debe ser ahora el hash")

	// La segunda petición ya resuelve por hash.
	user, err = uc.Authenticate(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

// Una sesión legacy sin vencimiento recibe uno al autenticar.
func TestAuthenticate_RellenaExpiracion(t *testing.T) {
	uc, users, sessions := newTestUseCase(t)

	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}))
	raw := "token-sin-vencimiento"
	require.NoError(t, sessions.Create(&entity.Session{
		Token:     raw,
		UserID:    "u1",
		CreatedAt: time.Now(),
	}))

	_, err := uc.Authenticate(raw)
	require.NoError(t, err)

	s, _, err := sessions.GetWithUser(token.Hash(raw), raw)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, s.ExpiresAt, "debe fijarse un vencimiento")
	assert.True(t, s.ExpiresAt.After(time.Now()))
}

// Si el hash del token legacy colisiona con otra sesión, la fila en claro se
// descarta pero la petición sigue autenticada.
func TestAuthenticate_ColisionDeHashNoBloquea(t *testing.T) {
	uc, users, sessions := newTestUseCase(t)

	require.NoError(t, users.Create(&entity.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}))
	raw := "token-legacy-colisionado"
	future := time.Now().Add(time.Hour)
	// Sesión legacy en claro y otra fila que ya ocupa su hash.
	require.NoError(t, sessions.Create(&entity.Session{Token: raw, UserID: "u1", CreatedAt: time.Now(), ExpiresAt: &future}))
	require.NoError(t, sessions.Create(&entity.Session{Token: token.Hash(raw), UserID: "u1", CreatedAt: time.Now(), ExpiresAt: &future}))

	user, err := uc.Authenticate(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.False(t, sessions.has(raw), "la fila legacy debe eliminarse tras la colisión")
}

// ──────────────────────────────────────────────────────────────────────────────
// Revoke
// ──────────────────────────────────────────────────────────────────────────────

// Revocar invalida el token; revocar de nuevo no es un error.
func TestRevoke_Idempotente(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)
	out := signup(t, uc)

	require.NoError(t, uc.Revoke(out.Token))
	assert.Zero(t, sessions.count())

	_, err := uc.Authenticate(out.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	assert.NoError(t, uc.Revoke(out.Token), "revocar dos veces no debe fallar")
	assert.NoError(t, uc.Revoke(""), "revocar un token vacío es un no-op")
}

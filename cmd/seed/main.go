package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/infrastructure/postgres"
	"github.com/jmarulo/salesledger-api/pkg/config"
	"github.com/jmarulo/salesledger-api/pkg/logger"
)

// Crea el usuario admin inicial si la tabla users está vacía.
// Configurable con SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD y SEED_ADMIN_NAME.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son requeridos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	count, err := userRepo.Count()
	if err != nil {
		log.Fatal().Err(err).Msg("contar usuarios")
	}
	if count > 0 {
		log.Info().Int("users", count).Msg("ya existen usuarios, no se crea el admin")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}

	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        cfg.Seed.AdminEmail,
		Name:         cfg.Seed.AdminName,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("email", admin.Email).Msg("admin inicial creado")
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

var _ repository.SalesmanRepository = (*SalesmanRepo)(nil)

// SalesmanRepo implementación del puerto SalesmanRepository sobre PostgreSQL.
type SalesmanRepo struct {
	pool *pgxpool.Pool
}

// NewSalesmanRepository construye el adaptador de persistencia para vendedores.
func NewSalesmanRepository(pool *pgxpool.Pool) *SalesmanRepo {
	return &SalesmanRepo{pool: pool}
}

// Create persiste un vendedor nuevo.
func (r *SalesmanRepo) Create(salesman *entity.Salesman) error {
	query := `
		INSERT INTO salesmen (id, name, code, phone, status)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		salesman.ID, salesman.Name, salesman.Code, salesman.Phone, salesman.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert salesman: %w", err)
	}
	return nil
}

// Update actualiza un vendedor.
func (r *SalesmanRepo) Update(salesman *entity.Salesman) error {
	query := `
		UPDATE salesmen SET name = $2, code = $3, phone = $4, status = $5
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		salesman.ID, salesman.Name, salesman.Code, salesman.Phone, salesman.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update salesman: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un vendedor por ID.
func (r *SalesmanRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM salesmen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete salesman: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List retorna todos los vendedores ordenados por nombre.
func (r *SalesmanRepo) List() ([]*entity.Salesman, error) {
	query := `SELECT id, name, code, phone, status FROM salesmen ORDER BY name ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list salesmen: %w", err)
	}
	defer rows.Close()
	var list []*entity.Salesman
	for rows.Next() {
		var s entity.Salesman
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Phone, &s.Status); err != nil {
			return nil, fmt.Errorf("scan salesman: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

package sales

import (
	"context"

	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn retorna error se hace Rollback;
// si retorna nil, Commit. Garantiza la atomicidad del commit de venta.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

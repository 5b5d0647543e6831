package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/application/ports"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
	"github.com/jmarulo/salesledger-api/pkg/logger"
)

// CreateSaleUseCase registra una venta descontando stock en una sola
// transacción. Cada línea se procesa en el orden que envió el cliente:
// bloquear la fila del producto (SELECT FOR UPDATE), verificar suficiencia,
// descontar y tomar el snapshot. Dos ventas concurrentes sobre el mismo
// producto se serializan en ese bloqueo; la perdedora observa el stock ya
// descontado. La venta es todo-o-nada: cualquier fallo revierte completo.
type CreateSaleUseCase struct {
	txRunner TxRunner
	cache    ports.Cache
	log      *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso. cache puede ser nil.
func NewCreateSaleUseCase(txRunner TxRunner, cache ports.Cache, log *logger.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, cache: cache, log: log}
}

// CreateSale valida la entrada, ejecuta la transacción y retorna el ID de la
// venta. Errores de negocio: domain.ErrInvalidInput (antes de tocar filas),
// domain.ErrProductNotFound (con el ID ofensor) y domain.ErrInsufficientStock
// (con el código del producto que se quedó corto). El caso de uso no
// reintenta: quedarse sin stock no es una condición transitoria.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	salesmanName := strings.TrimSpace(in.SalesmanName)
	salesmanID := strings.TrimSpace(in.SalesmanID)
	customerName := strings.TrimSpace(in.CustomerName)
	if salesmanName == "" || customerName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.ProductID) == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	sale := &entity.Sale{
		ID:           uuid.New().String(),
		SalesmanName: salesmanName,
		SalesmanID:   salesmanID,
		CustomerName: customerName,
		Date:         time.Now(),
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		totalAmount := decimal.Zero
		items := make([]entity.SaleItem, 0, len(in.Items))

		// Las líneas se procesan en el orden del cliente, sin reordenar ni
		// agrupar, para que el producto que falla sea inequívoco.
		for _, item := range in.Items {
			productID := strings.TrimSpace(item.ProductID)
			product, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, product.Code)
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totalAmount = totalAmount.Add(lineTotal)

			if err := productRepo.DecrementStock(productID, item.Quantity); err != nil {
				return err
			}

			items = append(items, entity.SaleItem{
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				ProductCode: product.Code,
				Quantity:    item.Quantity,
				Price:       product.Price,
				Total:       lineTotal,
			})
		}

		sale.TotalAmount = totalAmount
		sale.Items = items

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i := range sale.Items {
			if err := saleRepo.CreateItem(&sale.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El stock cambió: invalidar el listado cacheado (mejor esfuerzo, fuera de la tx).
	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, ports.ProductsCacheKey); err != nil {
			uc.log.Warn().Err(err).Msg("invalidar caché de productos tras la venta")
		}
	}

	return sale, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL
// (usable con pool o tx). Las ventas son de solo inserción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, salesman_name, salesman_id, customer_name, date, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SalesmanName, nullIfEmpty(sale.SalesmanID), sale.CustomerName,
		sale.Date, sale.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta; el ID es SERIAL y lo asigna la DB.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, product_name, product_code, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.SaleID, item.ProductID, item.ProductName, item.ProductCode,
		item.Quantity, item.Price, item.Total,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// List retorna las ventas con sus líneas, más recientes primero. Dos queries
// y armado en memoria: cabeceras y líneas por sale_id.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	headQuery := `
		SELECT id, salesman_name, salesman_id, customer_name, date, total_amount
		FROM sales ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), headQuery)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	byID := make(map[string]*entity.Sale)
	for rows.Next() {
		var s entity.Sale
		var salesmanID *string
		if err := rows.Scan(&s.ID, &s.SalesmanName, &salesmanID, &s.CustomerName, &s.Date, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if salesmanID != nil {
			s.SalesmanID = *salesmanID
		}
		s.Items = []entity.SaleItem{}
		sales = append(sales, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemQuery := `
		SELECT id, sale_id, product_id, product_name, product_code, quantity, price, total
		FROM sale_items ORDER BY sale_id, id`
	itemRows, err := r.q.Query(context.Background(), itemQuery)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.SaleItem
		var productID *string
		if err := itemRows.Scan(&it.ID, &it.SaleID, &productID, &it.ProductName, &it.ProductCode, &it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		if productID != nil {
			it.ProductID = *productID
		}
		if sale, ok := byID[it.SaleID]; ok {
			sale.Items = append(sale.Items, it)
		}
	}
	return sales, itemRows.Err()
}

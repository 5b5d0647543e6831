package sales

import (
	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

// ListSalesUseCase lectura de ventas con sus líneas (proyección simple).
type ListSalesUseCase struct {
	saleRepo repository.SaleRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// ListSales retorna las ventas más recientes primero.
func (uc *ListSalesUseCase) ListSales() (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Sales: make([]dto.SaleResponse, 0, len(sales))}
	for _, s := range sales {
		out.Sales = append(out.Sales, toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:           s.ID,
		SalesmanName: s.SalesmanName,
		SalesmanID:   s.SalesmanID,
		CustomerName: s.CustomerName,
		Date:         s.Date,
		TotalAmount:  s.TotalAmount,
		Items:        make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          it.ID,
			SaleID:      it.SaleID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return resp
}

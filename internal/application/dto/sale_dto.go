package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea solicitada en una venta (producto y cantidad).
type SaleItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	SalesmanName string            `json:"salesmanName"`
	SalesmanID   string            `json:"salesmanId,omitempty"`
	CustomerName string            `json:"customerName"`
	Items        []SaleItemRequest `json:"items"`
}

// SaleCreatedResponse salida de POST /api/sales.
type SaleCreatedResponse struct {
	Message string `json:"message"`
	SaleID  string `json:"saleId"`
}

// SaleItemResponse línea de venta con el snapshot del producto.
type SaleItemResponse struct {
	ID          int64           `json:"id"`
	SaleID      string          `json:"saleId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductCode string          `json:"productCode"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID           string             `json:"id"`
	SalesmanName string             `json:"salesmanName"`
	SalesmanID   string             `json:"salesmanId,omitempty"`
	CustomerName string             `json:"customerName"`
	Date         time.Time          `json:"date"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
	Items        []SaleItemResponse `json:"items"`
}

// SaleListResponse salida de GET /api/sales.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
}

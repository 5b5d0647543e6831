package dto

import "github.com/shopspring/decimal"

// ProductRequest body para crear o actualizar un producto.
type ProductRequest struct {
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Unit       string          `json:"unit"`
	LocationID string          `json:"locationId,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Unit       string          `json:"unit"`
	LocationID string          `json:"locationId,omitempty"`
}

// ProductListResponse salida de GET /api/products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta. Es inmutable una vez creada:
// no existe camino de actualización ni borrado.
type Sale struct {
	ID           string
	SalesmanName string
	SalesmanID   string // opcional, referencia informativa al vendedor
	CustomerName string
	Date         time.Time
	TotalAmount  decimal.Decimal // suma de los totales de línea
	Items        []SaleItem
}

// SaleItem representa una línea de venta con el snapshot del producto
// (nombre, código y precio) al momento de la venta.
type SaleItem struct {
	ID          int64
	SaleID      string
	ProductID   string
	ProductName string
	ProductCode string
	Quantity    int
	Price       decimal.Decimal // precio unitario al momento de la venta
	Total       decimal.Decimal // Price × Quantity
}

package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo con su stock compartido.
// Stock es el único campo que muta el registro de ventas; el resto solo
// cambia por el CRUD de catálogo.
type Product struct {
	ID         string
	Name       string
	Code       string // único, en mayúsculas
	Price      decimal.Decimal
	Stock      int
	Unit       string
	LocationID string // opcional, FK a locations
}

package entity

// Location representa una bodega o punto de venta.
type Location struct {
	ID      string
	Name    string
	Code    string // único, en mayúsculas
	Address string
	Type    string // warehouse por defecto
}

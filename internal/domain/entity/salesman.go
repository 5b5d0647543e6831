package entity

// Salesman representa un vendedor de campo.
type Salesman struct {
	ID     string
	Name   string
	Code   string // único, en mayúsculas
	Phone  string
	Status string // active por defecto
}

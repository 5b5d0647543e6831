package dto

// SalesmanRequest body para crear o actualizar un vendedor.
type SalesmanRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty"`
}

// SalesmanResponse vendedor en respuestas.
type SalesmanResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty"`
}

// SalesmanListResponse salida de GET /api/salesmen.
type SalesmanListResponse struct {
	Salesmen []SalesmanResponse `json:"salesmen"`
}

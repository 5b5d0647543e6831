package dto

// LocationRequest body para crear o actualizar una bodega.
type LocationRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty"`
}

// LocationResponse bodega en respuestas.
type LocationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty"`
}

// LocationListResponse salida de GET /api/locations.
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
}

package dto

// CreateUserRequest body para POST /api/users (solo admin; password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest body para PUT /api/users/:id. Actualización parcial:
// solo se aplican los campos presentes. Role solo lo aplica un admin.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserListResponse salida de GET /api/users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

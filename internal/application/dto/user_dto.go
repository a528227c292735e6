package dto

// UpdateUserRequest campos editables del perfil (propio, o por admin).
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// UpdateUserRoleRequest cambio de rol (solo COMPANY_ADMIN).
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER QC_ADMIN COMPANY_ADMIN"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

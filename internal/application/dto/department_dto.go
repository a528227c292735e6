package dto

import "time"

// CreateDepartmentRequest entrada para crear un departamento.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description,omitempty"`
	Tag         string  `json:"tag,omitempty"`
	LeadID      *string `json:"lead_id,omitempty"`
}

// UpdateDepartmentRequest campos editables de un departamento.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty"`
	LeadID      *string `json:"lead_id,omitempty"`
}

// AssignUsersRequest asigna usuarios al departamento.
type AssignUsersRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Tag         string    `json:"tag,omitempty"`
	CompanyID   string    `json:"company_id"`
	LeadID      *string   `json:"lead_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package dto

import "time"

// CreateSubProjectRequest entrada para crear una tarea.
type CreateSubProjectRequest struct {
	ProjectID      string     `json:"project_id" validate:"required,uuid"`
	Title          string     `json:"title" validate:"required,min=1,max=300"`
	Description    string     `json:"description,omitempty"`
	AssignedToID   *string    `json:"assigned_to_id,omitempty"`
	PointsValue    int        `json:"points_value,omitempty"`
	EstimatedHours *int       `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

// UpdateSubProjectRequest campos editables de una tarea.
type UpdateSubProjectRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW COMPLETED"`
	PointsValue    *int       `json:"points_value,omitempty"`
	EstimatedHours *int       `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

// AssignSubProjectRequest asigna la tarea a un miembro del proyecto.
type AssignSubProjectRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// SubProjectQuery filtros de listado de tareas.
type SubProjectQuery struct {
	Status       string `query:"status"`
	Search       string `query:"search"`
	AssignedToID string `query:"assigned_to_id"`
}

// SubProjectResponse salida de una tarea.
type SubProjectResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	ProjectID      string     `json:"project_id"`
	AssignedToID   *string    `json:"assigned_to_id,omitempty"`
	CreatedByID    string     `json:"created_by_id"`
	Status         string     `json:"status"`
	PointsValue    int        `json:"points_value"`
	EstimatedHours *int       `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

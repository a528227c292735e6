package entity

import "time"

// Estados de una tarea (sub-proyecto).
const (
	SubProjectTodo       = "TODO"
	SubProjectInProgress = "IN_PROGRESS"
	SubProjectInReview   = "IN_REVIEW"
	SubProjectCompleted  = "COMPLETED"
)

// SubProject es una tarea dentro de un proyecto.
type SubProject struct {
	ID             string
	Title          string
	Description    string
	ProjectID      string
	AssignedToID   *string
	CreatedByID    string
	Status         string // ver constantes SubProject*
	PointsValue    int
	EstimatedHours *int
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

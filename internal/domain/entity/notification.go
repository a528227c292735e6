package entity

import "time"

// Tipos de notificación in-app.
const (
	NotificationProjectAssignment = "PROJECT_ASSIGNMENT"
	NotificationTaskAssignment    = "TASK_ASSIGNMENT"
	NotificationSopApproval       = "SOP_APPROVAL"
	NotificationSopRejection      = "SOP_REJECTION"
	NotificationRoleChange        = "ROLE_CHANGE"
)

// Notification es una notificación in-app dirigida a un usuario.
type Notification struct {
	ID        string
	UserID    string
	Type      string // ver constantes Notification*
	Title     string
	Message   string
	Metadata  map[string]any
	IsRead    bool
	CreatedAt time.Time
}

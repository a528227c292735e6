package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	Name                    string          `json:"name" validate:"required,min=1,max=200"`
	Description             string          `json:"description,omitempty"`
	Budget                  decimal.Decimal `json:"budget,omitempty"`
	ProjectLeadID           *string         `json:"project_lead_id,omitempty"`
	StartDate               *time.Time      `json:"start_date,omitempty"`
	EndDate                 *time.Time      `json:"end_date,omitempty"`
	ScreenMonitoringEnabled bool            `json:"screen_monitoring_enabled,omitempty"`
}

// UpdateProjectRequest campos editables de un proyecto.
type UpdateProjectRequest struct {
	Name                    *string          `json:"name,omitempty"`
	Description             *string          `json:"description,omitempty"`
	Budget                  *decimal.Decimal `json:"budget,omitempty"`
	Status                  *string          `json:"status,omitempty" validate:"omitempty,oneof=PLANNING IN_PROGRESS ON_HOLD COMPLETED CANCELLED"`
	ProjectLeadID           *string          `json:"project_lead_id,omitempty"`
	StartDate               *time.Time       `json:"start_date,omitempty"`
	EndDate                 *time.Time       `json:"end_date,omitempty"`
	ScreenMonitoringEnabled *bool            `json:"screen_monitoring_enabled,omitempty"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID                      string                  `json:"id"`
	Name                    string                  `json:"name"`
	Description             string                  `json:"description,omitempty"`
	Budget                  decimal.Decimal         `json:"budget"`
	Status                  string                  `json:"status"`
	CompanyID               string                  `json:"company_id"`
	ProjectLeadID           *string                 `json:"project_lead_id,omitempty"`
	StartDate               *time.Time              `json:"start_date,omitempty"`
	EndDate                 *time.Time              `json:"end_date,omitempty"`
	ScreenMonitoringEnabled bool                    `json:"screen_monitoring_enabled"`
	Members                 []ProjectMemberResponse `json:"members,omitempty"`
	CreatedAt               time.Time               `json:"created_at"`
	UpdatedAt               time.Time               `json:"updated_at"`
}

// ProjectStatsResponse agregados de un proyecto.
type ProjectStatsResponse struct {
	TotalMembers         int             `json:"total_members"`
	TotalSubProjects     int             `json:"total_sub_projects"`
	CompletedSubProjects int             `json:"completed_sub_projects"`
	Budget               decimal.Decimal `json:"budget"`
	Status               string          `json:"status"`
}

// AddProjectMemberRequest agrega un miembro al proyecto.
type AddProjectMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=MEMBER QC_ADMIN LEAD"`
}

// UpdateProjectMemberRoleRequest cambia el rol de la membresía.
type UpdateProjectMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=MEMBER QC_ADMIN LEAD"`
}

// ProjectMemberResponse salida de una membresía.
type ProjectMemberResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	PointsEarned int       `json:"points_earned"`
	JoinedAt     time.Time `json:"joined_at"`
}

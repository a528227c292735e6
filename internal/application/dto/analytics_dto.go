package dto

// CompanyDashboardResponse dashboard de la empresa.
type CompanyDashboardResponse struct {
	Users       DashboardUsers    `json:"users"`
	Projects    DashboardProjects `json:"projects"`
	Departments int               `json:"departments"`
	Sops        DashboardSops     `json:"sops"`
}

// DashboardUsers conteos de usuarios.
type DashboardUsers struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// DashboardProjects conteos de proyectos.
type DashboardProjects struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// DashboardSops conteos de SOPs.
type DashboardSops struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

// UserAnalyticsResponse agregados de un usuario en un período.
type UserAnalyticsResponse struct {
	UserID        string `json:"user_id"`
	TotalMinutes  int    `json:"total_minutes"`
	TotalSessions int    `json:"total_sessions"`
	Points        int    `json:"points"` // acumulador global del usuario
}

// ProjectTimeResponse minutos por usuario dentro de un proyecto.
type ProjectTimeResponse struct {
	ProjectID string                `json:"project_id"`
	ByUser    []ProjectTimeUserItem `json:"by_user"`
}

// ProjectTimeUserItem item de ProjectTimeResponse.
type ProjectTimeUserItem struct {
	UserID       string `json:"user_id"`
	TotalMinutes int    `json:"total_minutes"`
}

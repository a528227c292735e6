package dto

import "time"

// UpdateCompanyRequest campos editables por el admin de la empresa.
type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty"`
	Logo    *string `json:"logo,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	CompanyCode        string     `json:"company_code"`
	Logo               string     `json:"logo,omitempty"`
	Address            string     `json:"address,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Website            string     `json:"website,omitempty"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CompanyStatsResponse agregados de la empresa.
type CompanyStatsResponse struct {
	TotalUsers         int        `json:"total_users"`
	ActiveUsers        int        `json:"active_users"`
	TotalDepartments   int        `json:"total_departments"`
	TotalProjects      int        `json:"total_projects"`
	TotalSops          int        `json:"total_sops"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SuperadminLoginRequest login de operador de plataforma.
type SuperadminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SuperadminRegisterRequest alta de operador de plataforma.
type SuperadminRegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
}

// SuperadminResponse datos del operador (sin password).
type SuperadminResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SuperadminLoginResponse token + operador.
type SuperadminLoginResponse struct {
	AccessToken string             `json:"access_token"`
	Admin       SuperadminResponse `json:"admin"`
}

// UpdateCompanySubscriptionRequest cambia la suscripción de una empresa desde
// la consola (renovación, upgrade, cancelación; nunca la transición perezosa).
type UpdateCompanySubscriptionRequest struct {
	Status string     `json:"status" validate:"required,oneof=TRIAL ACTIVE EXPIRED CANCELLED"`
	EndsAt *time.Time `json:"ends_at,omitempty"`
}

// CreatePlanRequest alta de plan de suscripción.
type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Description  string          `json:"description,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price" validate:"required"`
	YearlyPrice  decimal.Decimal `json:"yearly_price" validate:"required"`
	UserLimit    int             `json:"user_limit" validate:"required,min=1"`
	Features     []string        `json:"features,omitempty"`
	IsPopular    bool            `json:"is_popular,omitempty"`
}

// UpdatePlanRequest campos editables de un plan.
type UpdatePlanRequest struct {
	Description  *string          `json:"description,omitempty"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price,omitempty"`
	YearlyPrice  *decimal.Decimal `json:"yearly_price,omitempty"`
	UserLimit    *int             `json:"user_limit,omitempty"`
	Features     []string         `json:"features,omitempty"`
	IsPopular    *bool            `json:"is_popular,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	UserLimit    int             `json:"user_limit"`
	Features     []string        `json:"features,omitempty"`
	IsPopular    bool            `json:"is_popular"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PlatformStatsResponse agregados globales de la plataforma.
type PlatformStatsResponse struct {
	CompaniesByStatus map[string]int `json:"companies_by_status"`
	TotalCompanies    int            `json:"total_companies"`
	TotalUsers        int            `json:"total_users"`
	TotalProjects     int            `json:"total_projects"`
}

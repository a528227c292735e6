package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterCompanyRequest registra una empresa nueva junto con su usuario admin.
type RegisterCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
}

// RegisterUserRequest registra un usuario en una empresa existente vía company code.
type RegisterUserRequest struct {
	CompanyCode string `json:"company_code" validate:"required,len=8"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	Avatar       string     `json:"avatar,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	IsActive     bool       `json:"is_active"`
	CompanyID    string     `json:"company_id"`
	DepartmentID *string    `json:"department_id,omitempty"`
	Points       int        `json:"points"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CompanySummary resumen de empresa embebido en la respuesta de login.
type CompanySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyCode string `json:"company_code"`
}

// LoginResponse salida con token JWT, usuario, empresa y estado de suscripción.
type LoginResponse struct {
	AccessToken  string                     `json:"access_token"`
	User         UserResponse               `json:"user"`
	Company      CompanySummary             `json:"company"`
	Subscription SubscriptionStatusResponse `json:"subscription"`
}

// SubscriptionStatusResponse estado de suscripción de la empresa del caller.
type SubscriptionStatusResponse struct {
	Status        string `json:"status"`
	IsValid       bool   `json:"is_valid"`
	DaysRemaining int    `json:"days_remaining"`
	Message       string `json:"message"`
}

package entity

import "time"

// Roles válidos para User (a nivel de empresa).
const (
	RoleUser         = "USER"
	RoleQCAdmin      = "QC_ADMIN"
	RoleCompanyAdmin = "COMPANY_ADMIN"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	Email        string // único en todo el sistema
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // USER, QC_ADMIN, COMPANY_ADMIN
	Avatar       string
	Phone        string
	IsActive     bool
	CompanyID    string
	DepartmentID *string
	StartDate    *time.Time
	EndDate      *time.Time
	Points       int // acumulador global de puntos, nunca decrece
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// SuperAdmin es un operador de la plataforma (fuera del modelo multi-tenant).
type SuperAdmin struct {
	ID           string
	Email        string // único
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Department agrupa usuarios dentro de una empresa.
type Department struct {
	ID          string
	Name        string
	Description string
	Tag         string // ej. 'Engineering', 'Design', 'Marketing'
	CompanyID   string
	LeadID      *string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

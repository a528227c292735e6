package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un proyecto.
const (
	ProjectPlanning   = "PLANNING"
	ProjectInProgress = "IN_PROGRESS"
	ProjectOnHold     = "ON_HOLD"
	ProjectCompleted  = "COMPLETED"
	ProjectCancelled  = "CANCELLED"
)

// Project representa un proyecto de una empresa.
type Project struct {
	ID                      string
	Name                    string
	Description             string
	Budget                  decimal.Decimal
	Status                  string // ver constantes Project*
	CompanyID               string
	ProjectLeadID           *string
	StartDate               *time.Time
	EndDate                 *time.Time
	ScreenMonitoringEnabled bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

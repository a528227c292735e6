package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionPlan es un plan comercial administrado desde la consola superadmin.
// Los precios son NUMERIC en la DB y se mapean a decimal.Decimal.
type SubscriptionPlan struct {
	ID           string
	Name         string // único (case-insensitive)
	Description  string
	MonthlyPrice decimal.Decimal
	YearlyPrice  decimal.Decimal
	UserLimit    int
	Features     []string
	IsPopular    bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

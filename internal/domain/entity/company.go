package entity

import "time"

// Estados de suscripción de una empresa.
// La única transición automática del sistema es ACTIVE→EXPIRED y ocurre de
// forma perezosa durante el gate de suscripción; renovaciones y upgrades se
// manejan desde la consola superadmin.
const (
	SubscriptionTrial     = "TRIAL"
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// Company representa una organización/tenant del sistema. Todo dato de negocio
// queda acotado por CompanyID.
type Company struct {
	ID                 string
	Name               string // único
	CompanyCode        string // único, 8 caracteres A-Z0-9; los usuarios lo usan para unirse
	Logo               string
	Address            string
	Phone              string
	Website            string
	SubscriptionStatus string     // ver constantes Subscription*
	TrialEndsAt        *time.Time // relevante cuando el estado es TRIAL
	SubscriptionEndsAt *time.Time // relevante cuando el estado es ACTIVE
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

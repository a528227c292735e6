// Package subscription implementa el gate de suscripción: decide si la empresa
// del caller puede usar el servicio, y ejecuta la única transición automática
// del modelo (ACTIVE→EXPIRED, perezosa, disparada por el acceso).
package subscription

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// Errores del gate. Cada uno envuelve el sentinel de dominio correspondiente
// para que el middleware decida el status HTTP con errors.Is.
var (
	ErrCompanyNotFound      = fmt.Errorf("empresa no encontrada: %w", domain.ErrNotFound)
	ErrCompanyInactive      = fmt.Errorf("la cuenta de la empresa está inactiva: %w", domain.ErrForbidden)
	ErrTrialExpired         = fmt.Errorf("el período de prueba ha expirado: %w", domain.ErrForbidden)
	ErrSubscriptionExpired  = fmt.Errorf("la suscripción ha expirado: %w", domain.ErrForbidden)
	ErrSubscriptionInactive = fmt.Errorf("la suscripción no está activa: %w", domain.ErrForbidden)
)

// Service verifica el estado de suscripción de una empresa.
type Service struct {
	companyRepo repository.CompanyRepository
	now         func() time.Time
}

// NewService construye el gate. nowFn permite fijar el reloj en tests; nil usa time.Now.
func NewService(companyRepo repository.CompanyRepository, nowFn func() time.Time) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{companyRepo: companyRepo, now: nowFn}
}

// CheckAccess decide si la empresa puede acceder al servicio.
//
// Máquina de 4 estados {TRIAL, ACTIVE, EXPIRED, CANCELLED} con una sola
// transición automática: una empresa ACTIVE con subscription_ends_at en el
// pasado se persiste como EXPIRED antes de rechazar. La escritura es un
// overwrite incondicional (estado destino fijo), idempotente bajo requests
// concurrentes; si falla, el rechazo se devuelve igual porque la decisión ya
// estaba tomada con la información leída.
func (s *Service) CheckAccess(ctx context.Context, companyID string) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("consultar empresa: %w", err)
	}
	if company == nil {
		return ErrCompanyNotFound
	}
	if !company.IsActive {
		return ErrCompanyInactive
	}

	now := s.now()
	switch company.SubscriptionStatus {
	case entity.SubscriptionTrial:
		if company.TrialEndsAt != nil && company.TrialEndsAt.Before(now) {
			return ErrTrialExpired
		}
	case entity.SubscriptionActive:
		if company.SubscriptionEndsAt != nil && company.SubscriptionEndsAt.Before(now) {
			if err := s.companyRepo.UpdateSubscriptionStatus(ctx, company.ID, entity.SubscriptionExpired); err != nil {
				log.Error().Err(err).Str("company_id", company.ID).
					Msg("no se pudo persistir la transición ACTIVE→EXPIRED")
			}
			return ErrSubscriptionExpired
		}
	case entity.SubscriptionExpired, entity.SubscriptionCancelled:
		return ErrSubscriptionInactive
	}

	return nil
}

// Status arma el resumen de suscripción de la empresa (endpoint
// /auth/subscription-status y respuesta de login). No muta nada.
func (s *Service) Status(ctx context.Context, companyID string) (*dto.SubscriptionStatusResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("consultar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	st := StatusFor(company, s.now())
	return &st, nil
}

// StatusFor calcula el resumen de suscripción de una empresa ya cargada.
func StatusFor(company *entity.Company, now time.Time) dto.SubscriptionStatusResponse {
	switch company.SubscriptionStatus {
	case entity.SubscriptionTrial:
		days := daysRemaining(company.TrialEndsAt, now)
		if days > 0 {
			return dto.SubscriptionStatusResponse{
				Status:        entity.SubscriptionTrial,
				IsValid:       true,
				DaysRemaining: days,
				Message:       fmt.Sprintf("período de prueba: quedan %d día(s)", days),
			}
		}
		return dto.SubscriptionStatusResponse{
			Status:  entity.SubscriptionTrial,
			IsValid: false,
			Message: "el período de prueba ha expirado",
		}
	case entity.SubscriptionActive:
		days := daysRemaining(company.SubscriptionEndsAt, now)
		if days > 0 {
			return dto.SubscriptionStatusResponse{
				Status:        entity.SubscriptionActive,
				IsValid:       true,
				DaysRemaining: days,
				Message:       fmt.Sprintf("suscripción activa: quedan %d día(s)", days),
			}
		}
		return dto.SubscriptionStatusResponse{
			Status:  entity.SubscriptionActive,
			IsValid: false,
			Message: "la suscripción ha expirado",
		}
	case entity.SubscriptionExpired:
		return dto.SubscriptionStatusResponse{
			Status:  entity.SubscriptionExpired,
			IsValid: false,
			Message: "la suscripción ha expirado, renueve para continuar",
		}
	default: // CANCELLED
		return dto.SubscriptionStatusResponse{
			Status:  company.SubscriptionStatus,
			IsValid: false,
			Message: "la suscripción fue cancelada",
		}
	}
}

// daysRemaining días (redondeados hacia arriba) hasta la fecha dada; 0 si
// no hay fecha o ya pasó.
func daysRemaining(until *time.Time, now time.Time) int {
	if until == nil || until.Before(now) {
		return 0
	}
	return int(math.Ceil(until.Sub(now).Hours() / 24))
}

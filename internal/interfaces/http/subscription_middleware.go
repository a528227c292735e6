package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/subscription"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// SubscriptionGate devuelve un middleware Fiber que verifica si la empresa del
// token puede usar el servicio. Debe usarse DESPUÉS de AuthMiddleware (necesita
// LocalCompanyID). Las rutas de auth y el propio endpoint de estado de
// suscripción quedan fuera del gate para que una empresa vencida pueda ver por
// qué no entra.
//
// Comportamiento:
//   - 404 Not Found   → la empresa del token ya no existe.
//   - 403 Forbidden   → empresa inactiva, trial vencido o suscripción vencida/cancelada.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func SubscriptionGate(svc *subscription.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		err := svc.CheckAccess(c.Context(), companyID)
		if err == nil {
			return c.Next()
		}

		switch {
		case errors.Is(err, subscription.ErrCompanyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "COMPANY_NOT_FOUND",
				Message: "la empresa del token no existe",
			})
		case errors.Is(err, subscription.ErrCompanyInactive):
			return forbidden(c, "COMPANY_INACTIVE", err)
		case errors.Is(err, subscription.ErrTrialExpired):
			return forbidden(c, "TRIAL_EXPIRED", err)
		case errors.Is(err, subscription.ErrSubscriptionExpired):
			return forbidden(c, "SUBSCRIPTION_EXPIRED", err)
		case errors.Is(err, subscription.ErrSubscriptionInactive):
			return forbidden(c, "SUBSCRIPTION_INACTIVE", err)
		case errors.Is(err, domain.ErrForbidden):
			return forbidden(c, "FORBIDDEN", err)
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}
	}
}

func forbidden(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

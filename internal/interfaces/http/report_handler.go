package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// ReportHandler maneja la descarga de reportes PDF (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// UserTimeReport godoc
// @Summary      Descargar reporte PDF de tiempo de un usuario
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        userId      path   string  true   "ID del usuario"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/users/{userId}/time [get]
func (h *ReportHandler) UserTimeReport(c *fiber.Ctx) error {
	var q dto.TrackingHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	userID := c.Params("userId")
	pdf, err := h.uc.UserTimeReport(c.Context(), userID, GetCompanyID(c), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte-tiempo-%s.pdf"`, userID))
	return c.Send(pdf)
}

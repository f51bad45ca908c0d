package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/application/expiry"
)

// SweepHandler dispara manualmente la pasada de vencimientos. La misma pasada
// corre programada desde cmd/expirysweep.
type SweepHandler struct {
	uc *expiry.SweepUseCase
}

// NewSweepHandler construye el handler.
func NewSweepHandler(uc *expiry.SweepUseCase) *SweepHandler {
	return &SweepHandler{uc: uc}
}

// Run godoc
// @Summary      Ejecutar el barrido de vencimientos (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepReportDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/expiry-sweep [post]
func (h *SweepHandler) Run(c *fiber.Ctx) error {
	report, err := h.uc.Run(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

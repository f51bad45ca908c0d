package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Incorpora-api/internal/application/analytics"
	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/domain"
)

// OverviewHandler sirve el payload del dashboard administrativo.
type OverviewHandler struct {
	uc *analytics.OverviewUseCase
}

// NewOverviewHandler construye el handler.
func NewOverviewHandler(uc *analytics.OverviewUseCase) *OverviewHandler {
	return &OverviewHandler{uc: uc}
}

// Get godoc
// @Summary      Overview del dashboard (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Failure      503  {object}  dto.OverviewDTO  "payload en ceros con fallback=true"
// @Router       /api/admin/overview [get]
func (h *OverviewHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetOverview(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			// El cuerpo sigue siendo el shape completo del dashboard, en ceros.
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

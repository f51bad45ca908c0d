package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/application/usecase"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// RegistrationHandler maneja las peticiones HTTP del asistente de registro.
type RegistrationHandler struct {
	uc *usecase.RegistrationUseCase
}

// NewRegistrationHandler construye el handler.
func NewRegistrationHandler(uc *usecase.RegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// Create godoc
// @Summary      Iniciar una solicitud de incorporación
// @Tags         registrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRegistrationRequest  true  "Datos iniciales"
// @Success      201   {object}  dto.RegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registrations [post]
func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), GetEmail(c), in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar las solicitudes propias
// @Tags         registrations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RegistrationListResponse
// @Router       /api/registrations [get]
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListOwn(c.Context(), GetUserID(c))
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// ListAdmin godoc
// @Summary      Listar todas las solicitudes (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RegistrationListResponse
// @Router       /api/admin/registrations [get]
func (h *RegistrationHandler) ListAdmin(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una solicitud
// @Tags         registrations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegistrationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registrations/{id} [get]
func (h *RegistrationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// UpdateDetails godoc
// @Summary      Actualizar datos de empresa y ubicación
// @Tags         registrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.UpdateDetailsRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registrations/{id}/details [put]
func (h *RegistrationHandler) UpdateDetails(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateDetails(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// AdvanceStep godoc
// @Summary      Mover la solicitud a otro paso del asistente
// @Tags         registrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.AdvanceStepRequest  true  "Paso destino"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registrations/{id}/step [post]
func (h *RegistrationHandler) AdvanceStep(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AdvanceStepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	switch in.Step {
	case entity.StepContactDetails, entity.StepCompanyDetails, entity.StepDocumentation, entity.StepIncorporate:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "step desconocido"})
	}
	out, err := h.uc.AdvanceStep(c.Context(), id, GetUserID(c), GetRole(c), in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// DecidePayment godoc
// @Summary      Aprobar o rechazar el pago inicial (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.ApprovalRequest  true  "Decisión"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/registrations/{id}/payment-decision [post]
func (h *RegistrationHandler) DecidePayment(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DecidePayment(c.Context(), id, in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// DecideBalancePayment godoc
// @Summary      Aprobar o rechazar el pago del saldo (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.ApprovalRequest  true  "Decisión"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/registrations/{id}/balance-decision [post]
func (h *RegistrationHandler) DecideBalancePayment(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DecideBalancePayment(c.Context(), id, in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// DecideDocuments godoc
// @Summary      Aprobar o rechazar la documentación legal (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.ApprovalRequest  true  "Decisión"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/registrations/{id}/documents-decision [post]
func (h *RegistrationHandler) DecideDocuments(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DecideDocuments(c.Context(), id, in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// SetExpiry godoc
// @Summary      Fijar la fecha de vencimiento de la secretaría (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del registro"
// @Param        body  body  dto.SetExpiryRequest  true  "Fecha 2006-01-02"
// @Success      200   {object}  dto.RegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/registrations/{id}/expiry [post]
func (h *RegistrationHandler) SetExpiry(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SetExpiryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetExpiry(c.Context(), id, in)
	if err != nil {
		return registrationError(c, err)
	}
	return c.JSON(out)
}

// registrationError traduce los errores de dominio del flujo de registro a HTTP.
func registrationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso sobre este registro"})
	case errors.Is(err, domain.ErrStepNotAllowed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STEP_NOT_ALLOWED", Message: "el paso requiere aprobaciones previas"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación no aplica al estado actual"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

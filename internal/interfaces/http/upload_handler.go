package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/application/usecase"
	"github.com/jhoicas/Incorpora-api/internal/domain"
)

// UploadHandler maneja la subida, descarga y borrado de recibos y documentos.
// Las respuestas usan el envelope {success, file | error} que consume el frontend.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir un recibo o documento (multipart)
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        registration_id  formData  string  true  "ID del registro"
// @Param        kind             formData  string  true  "payment-receipt | balance-receipt | document"
// @Param        file             formData  file    true  "Archivo (pdf, jpg, jpeg, png)"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.UploadResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	registrationID := c.FormValue("registration_id")
	kind := c.FormValue("kind")
	if registrationID == "" || kind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "registration_id y kind son requeridos"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "archivo no incluido en el formulario"})
	}
	content, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "no se pudo leer el archivo"})
	}
	defer content.Close()

	out, err := h.uc.Upload(c.Context(), GetUserID(c), GetRole(c), usecase.UploadInput{
		RegistrationID: registrationID,
		Kind:           kind,
		FileName:       fileHeader.Filename,
		ContentType:    fileHeader.Header.Get("Content-Type"),
		SizeBytes:      fileHeader.Size,
		Content:        content,
	})
	if err != nil {
		return uploadError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{Success: true, File: out})
}

// Download godoc
// @Summary      Descargar el contenido de un archivo
// @Tags         uploads
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id  path  string  true  "ID del archivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.UploadResponse
// @Router       /api/uploads/{id} [get]
func (h *UploadHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "id es requerido"})
	}
	meta, content, err := h.uc.Open(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return uploadError(c, err)
	}
	c.Set(fiber.HeaderContentType, meta.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+meta.FileName+`"`)
	return c.SendStream(content, int(meta.SizeBytes))
}

// Delete godoc
// @Summary      Eliminar un archivo subido
// @Tags         uploads
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del archivo"
// @Success      200  {object}  dto.UploadResponse
// @Failure      404  {object}  dto.UploadResponse
// @Router       /api/uploads/{id} [delete]
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id, GetUserID(c), GetRole(c)); err != nil {
		return uploadError(c, err)
	}
	return c.JSON(dto.UploadResponse{Success: true})
}

// uploadError traduce los errores del caso de uso de uploads al envelope JSON.
func uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.UploadResponse{Error: "archivo o registro no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.UploadResponse{Error: "sin permiso sobre este archivo"})
	case errors.Is(err, domain.ErrFileTypeNotAllowed):
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "tipo de archivo no admitido (pdf, jpg, jpeg, png)"})
	case errors.Is(err, domain.ErrFileTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "el archivo excede el tamaño máximo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{Error: "kind desconocido"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.UploadResponse{Error: err.Error()})
	}
}

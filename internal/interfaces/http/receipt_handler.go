package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
	"github.com/obrasoft/obra-api/internal/application/usecase"
)

// maxReceiptImageBytes tope del tamaño de imagen aceptado (10 MB).
const maxReceiptImageBytes = 10 << 20

// ReceiptHandler maneja captura y registro de recibos (protegido).
type ReceiptHandler struct {
	uc *usecase.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *usecase.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Extract godoc
// @Summary      Subir imagen de recibo y extraer campos con IA
// @Tags         receipts
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Imagen del recibo (jpg/png/webp)"
// @Success      200    {object}  dto.ExtractReceiptResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/receipts/extract [post]
func (h *ReceiptHandler) Extract(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image (multipart) es requerido"})
	}
	if fileHeader.Size > maxReceiptImageBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la imagen supera el tamaño máximo de 10 MB"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}
	defer f.Close()
	image, err := io.ReadAll(io.LimitReader(f, maxReceiptImageBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}
	mediaType := fileHeader.Header.Get("Content-Type")

	out, err := h.uc.Extract(c.Context(), organizationID, image, mediaType, fileHeader.Filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar recibo (tras revisar la extracción)
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Datos del recibo"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      403   {object}  dto.ErrorResponse  "Límite de recibos del plan alcanzado"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
	}
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || in.Vendor == "" || in.Date == "" || in.ImagePath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id, vendor, date e image_path son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), organizationID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener recibo con URL firmada de la imagen
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProject godoc
// @Summary      Listar recibos de un proyecto
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del proyecto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ReceiptListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/receipts [get]
func (h *ReceiptHandler) ListByProject(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByProject(c.Context(), GetOrganizationID(c), projectID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Textil-api/internal/application/billing"
	"github.com/jhoicas/Textil-api/internal/application/dto"
)

// ProformaHandler maneja las proformas (protegido). Una proforma no mueve
// stock: es una cotización con precios congelados.
type ProformaHandler struct {
	uc *billing.ProformaUseCase
}

// NewProformaHandler construye el handler.
func NewProformaHandler(uc *billing.ProformaUseCase) *ProformaHandler {
	return &ProformaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proforma
// @Tags         proformas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProformaRequest  true  "cliente y líneas; los precios se toman del inventario actual"
// @Success      201   {object}  dto.ProformaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proformas [post]
func (h *ProformaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProformaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proformas del usuario
// @Tags         proformas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (default 50, tope 200)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ProformaListResponse
// @Router       /api/proformas [get]
func (h *ProformaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proforma
// @Tags         proformas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la proforma"
// @Success      200  {object}  dto.ProformaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proformas/{id} [get]
func (h *ProformaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar proforma en PDF
// @Tags         proformas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la proforma"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proformas/{id}/pdf [get]
func (h *ProformaHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadPDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-backoffice/internal/application/catalog"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/pkg/csvbatch"
)

// CatalogHandler importación/exportación masiva del catálogo (solo administradores).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar catálogo (CSV)
// @Description  bom=true antepone la marca de orden de bytes para hojas de cálculo.
// @Tags         catalog
// @Security     Bearer
// @Produce      text/csv
// @Param        bom  query  bool  false  "Anteponer BOM UTF-8"
// @Success      200  {string}  string
// @Router       /api/admin/catalog/export [get]
func (h *CatalogHandler) Export(c *fiber.Ctx) error {
	text, err := h.uc.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if c.QueryBool("bom", false) {
		text = csvbatch.WithBOM(text)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog.csv"`)
	return c.SendString(text)
}

// Import godoc
// @Summary      Importar catálogo (CSV)
// @Description  Acepta el archivo como cuerpo crudo o en el campo multipart "file". Filas sin id crean productos; con id los actualizan.
// @Tags         catalog
// @Security     Bearer
// @Accept       text/csv
// @Accept       multipart/form-data
// @Produce      json
// @Param        charset  query  string  false  "Codificación del archivo (default utf-8)"
// @Success      200      {object}  dto.CatalogImportResult
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      413      {object}  dto.ErrorResponse
// @Router       /api/admin/catalog/import [post]
func (h *CatalogHandler) Import(c *fiber.Ctx) error {
	raw, err := importBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo requerido"})
	}
	out, err := h.uc.Import(c.UserContext(), raw, c.Query("charset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func importBody(c *fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, fiber.ErrBadRequest
	}
	// c.Body() se reutiliza al terminar la petición.
	return append([]byte(nil), body...), nil
}

package http

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/alegra-reports-api/internal/application/inventory"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// maxUploadBytes tamaño máximo del archivo de inventario.
const maxUploadBytes = 16 << 20

// InventoryHandler reportes de inventario.
type InventoryHandler struct {
	uc  *inventory.ReportUseCase
	loc *time.Location
	now clock
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReportUseCase, loc *time.Location) *InventoryHandler {
	return &InventoryHandler{uc: uc, loc: loc, now: time.Now}
}

// ValueReport godoc
// @Summary      Valor del inventario por departamento
// @Description  Pagina /reports/inventory-value, filtra obsoletos (*) y agrupa por departamento.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        toDate    query  string  false  "Fecha de corte (YYYY-MM-DD). Default: hoy."
// @Param        limit     query  int     false  "Filas por página (<= 1000)"
// @Param        page      query  int     false  "Página en bloques de limit, desde 1"
// @Param        pageSize  query  int     false  "Filas por petición a Alegra"
// @Param        query     query  string  false  "Búsqueda"
// @Success      200  {object}  dto.ValueReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/direct/inventory/value-report [get]
func (h *InventoryHandler) ValueReport(c *fiber.Ctx) error {
	req := inventory.ValueReportRequest{
		ToDate: c.Query("toDate", todayString(h.now, h.loc)),
		Query:  c.Query("query"),
	}
	var err error
	if req.Limit, err = queryInt(c, "limit", 0); err != nil {
		return writeError(c, err)
	}
	if req.Page, err = queryInt(c, "page", 1); err != nil {
		return writeError(c, err)
	}
	if req.PageSize, err = queryInt(c, "pageSize", 0); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ValueReport(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	out.Success = true
	return c.JSON(out)
}

// Analysis godoc
// @Summary      Análisis completo de inventario (ABC, agotados, stock bajo)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        toDate  query  string  false  "Fecha de corte. Default: hoy."
// @Router       /api/direct/inventory/analysis [get]
func (h *InventoryHandler) Analysis(c *fiber.Ctx) error {
	out, err := h.uc.Analysis(c.UserContext(), c.Query("toDate", todayString(h.now, h.loc)))
	if err != nil {
		return writeError(c, err)
	}
	out.Success = true
	return c.JSON(out)
}

// QuickTotal godoc
// @Summary      Valor total del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        to_date  query  string  false  "Fecha de corte. Default: hoy."
// @Router       /api/inventory/quick-total [get]
func (h *InventoryHandler) QuickTotal(c *fiber.Ctx) error {
	out, err := h.uc.QuickTotal(c.UserContext(), c.Query("to_date", todayString(h.now, h.loc)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

// AnalyzeFile godoc
// @Summary      Analiza un CSV o XLSX de inventario exportado de Alegra
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .csv o .xlsx"
// @Success      200  {object}  dto.FileAnalysisDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/analyze-file [post]
func (h *InventoryHandler) AnalyzeFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, domain.Invalid("file", "debe enviar el archivo en el campo 'file'"))
	}
	if fh.Size > maxUploadBytes {
		return writeError(c, domain.Invalid("file", "el archivo supera %d MB", maxUploadBytes>>20))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return writeError(c, err)
	}
	out, err := inventory.AnalyzeFile(fh.Filename, content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

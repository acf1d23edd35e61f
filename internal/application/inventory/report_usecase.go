package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/alegra-reports-api/internal/application/dto"
	"github.com/jhoicas/alegra-reports-api/internal/application/normalizer"
	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
	"github.com/jhoicas/alegra-reports-api/internal/domain/entity"
	"github.com/jhoicas/alegra-reports-api/pkg/money"
)

// Límites del reporte de valor. Alegra responde 503 con páginas mayores a 300.
const (
	MaxValueReportLimit = 1000
	MaxPageSize         = 300
	DefaultPageSize     = 200
	analysisMaxItems    = 3000
	departmentSamples   = 10
)

// ValueReportRequest parámetros de GET /api/direct/inventory/value-report.
type ValueReportRequest struct {
	ToDate   string // YYYY-MM-DD
	Limit    int    // máximo de filas a recibir de Alegra
	Page     int    // página del cliente en bloques de Limit, desde 1
	PageSize int    // filas por petición a Alegra
	Query    string
}

// ReportUseCase reportes de inventario sobre /reports/inventory-value.
type ReportUseCase struct {
	source   ports.InventorySource
	pageSize int
	log      zerolog.Logger
}

// NewReportUseCase construye el caso de uso. pageSize <= 0 usa DefaultPageSize.
func NewReportUseCase(source ports.InventorySource, pageSize int, log zerolog.Logger) *ReportUseCase {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return &ReportUseCase{source: source, pageSize: pageSize, log: log}
}

func (req *ValueReportRequest) normalize(defaultPageSize int) error {
	if _, err := time.Parse(entity.DateLayout, req.ToDate); err != nil {
		return domain.Invalid("toDate", "formato de fecha inválido, use YYYY-MM-DD")
	}
	switch {
	case req.Limit == 0:
		req.Limit = MaxValueReportLimit
	case req.Limit < 0 || req.Limit > MaxValueReportLimit:
		return domain.Invalid("limit", "debe estar entre 1 y %d", MaxValueReportLimit)
	}
	switch {
	case req.PageSize == 0:
		req.PageSize = defaultPageSize
	case req.PageSize < 0 || req.PageSize > MaxPageSize:
		return domain.Invalid("pageSize", "debe estar entre 1 y %d", MaxPageSize)
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Page < 0 {
		return domain.Invalid("page", "debe ser mayor o igual a 1")
	}
	return nil
}

// fetchItems lee de Alegra las filas [(Page-1)*Limit, Page*Limit) en peticiones
// de PageSize, hasta completar Limit o recibir una página corta. Descarta
// obsoletos y deshabilitados y normaliza el resto.
// Cualquier falla de Alegra aborta todo el reporte.
func (uc *ReportUseCase) fetchItems(ctx context.Context, req ValueReportRequest) ([]entity.InventoryItem, dto.ValueReportMetadata, error) {
	meta := dto.ValueReportMetadata{
		Page:     req.Page,
		Limit:    req.Limit,
		PageSize: req.PageSize,
		Query:    req.Query,
		ToDate:   req.ToDate,
	}
	items := make([]entity.InventoryItem, 0)

	offset := (req.Page - 1) * req.Limit
	for meta.TotalReceived < req.Limit {
		start := offset + meta.TotalReceived
		rows, err := uc.source.InventoryValuePage(ctx, ports.InventoryPageQuery{
			ToDate: req.ToDate,
			Start:  start,
			Limit:  req.PageSize,
			Query:  req.Query,
		})
		if err != nil {
			return nil, meta, fmt.Errorf("inventario desde fila %d: %w", start, err)
		}
		meta.PagesFetched++
		short := len(rows) < req.PageSize
		if remaining := req.Limit - meta.TotalReceived; len(rows) > remaining {
			rows = rows[:remaining]
		}

		for i, raw := range rows {
			meta.TotalReceived++
			name, _ := raw["name"].(string)
			if IsObsolete(name) {
				meta.TotalFilteredObsolete++
				continue
			}
			if status, ok := raw["status"].(string); ok && status != entity.ItemStatusActive {
				meta.TotalFilteredDisabled++
				continue
			}
			item, err := normalizer.InventoryRecord(raw)
			if err != nil {
				return nil, meta, fmt.Errorf("inventario fila %d: %w", start+i+1, err)
			}
			items = append(items, item)
		}

		uc.log.Debug().
			Str("op", "inventory_value").
			Int("start", start).
			Int("rows", len(rows)).
			Int("returned", len(items)).
			Msg("página de inventario")

		if short {
			break
		}
	}

	meta.TotalFiltered = meta.TotalFilteredObsolete + meta.TotalFilteredDisabled
	meta.TotalReturned = len(items)
	return items, meta, nil
}

// ValueReport ítems vigentes con su resumen por departamento.
func (uc *ReportUseCase) ValueReport(ctx context.Context, req ValueReportRequest) (*dto.ValueReportDTO, error) {
	if err := req.normalize(uc.pageSize); err != nil {
		return nil, err
	}
	items, meta, err := uc.fetchItems(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &dto.ValueReportDTO{
		Data:        itemDTOs(items),
		Departments: departmentSummaries(items, 0),
		Metadata:    meta,
	}
	for _, it := range items {
		out.TotalUnits += it.Quantity
		out.TotalValue += it.TotalValue
	}

	uc.log.Info().
		Str("op", "inventory_value").
		Str("to", req.ToDate).
		Int("received", meta.TotalReceived).
		Int("filtered_obsolete", meta.TotalFilteredObsolete).
		Int("filtered_disabled", meta.TotalFilteredDisabled).
		Int("returned", meta.TotalReturned).
		Int("pages", meta.PagesFetched).
		Msg("reporte de valor de inventario")
	return out, nil
}

// Analysis análisis completo del inventario vigente a toDate.
func (uc *ReportUseCase) Analysis(ctx context.Context, toDate string) (*dto.InventoryAnalysisDTO, error) {
	req := ValueReportRequest{ToDate: toDate, Page: 1, PageSize: uc.pageSize}
	if err := req.normalize(uc.pageSize); err != nil {
		return nil, err
	}
	req.Limit = analysisMaxItems

	items, meta, err := uc.fetchItems(ctx, req)
	if err != nil {
		return nil, err
	}
	out := Analyze(items)
	out.ToDate = toDate
	out.Metadata = meta
	return &out, nil
}

// QuickTotal valor total del inventario según /reports/inventory-value-totals.
func (uc *ReportUseCase) QuickTotal(ctx context.Context, toDate string) (*dto.QuickTotalDTO, error) {
	if _, err := time.Parse(entity.DateLayout, toDate); err != nil {
		return nil, domain.Invalid("to_date", "formato de fecha inválido, use YYYY-MM-DD")
	}
	rec, err := uc.source.InventoryValueTotals(ctx, toDate)
	if err != nil {
		return nil, fmt.Errorf("total de inventario: %w", err)
	}
	total := money.Pesos(money.FromAny(rec["total"]))
	return &dto.QuickTotalDTO{
		TotalValue:          total,
		TotalValueFormatted: money.FormatCOP(total),
		ToDate:              toDate,
	}, nil
}

// AnalyzeFile analiza un CSV o XLSX exportado de Alegra, detectando su estructura.
func AnalyzeFile(filename string, content []byte) (*dto.FileAnalysisDTO, error) {
	if len(content) == 0 {
		return nil, domain.Invalid("file", "archivo vacío")
	}
	table, err := normalizer.ReadFile(filename, content)
	if err != nil {
		return nil, err
	}
	shape, err := normalizer.DetectShape(table.Headers)
	if err != nil {
		return nil, err
	}
	items := normalizer.FileRows(shape, table)

	out := &dto.FileAnalysisDTO{
		FileType:      string(shape),
		Filename:      filename,
		Summary:       fileSummary(items),
		Departments:   departmentSummaries(items, departmentSamples),
		TopCategories: topCategories(items),
	}
	return out, nil
}

func fileSummary(items []entity.InventoryItem) dto.FileSummaryDTO {
	s := dto.FileSummaryDTO{TotalItems: len(items)}
	categories := make(map[string]struct{})
	for _, it := range items {
		s.TotalUnits += it.Quantity
		s.TotalValue += it.TotalValue
		s.TotalSaleValue += saleValue(it)
		if it.Shape == entity.ShapeProductExport {
			s.TotalCost += it.UnitCost
		} else {
			s.TotalCost += it.UnitCost * it.Quantity
		}
		if it.Active() {
			s.ActiveItems++
		} else {
			s.InactiveItems++
		}
		if c := strings.TrimSpace(it.Category); c != "" {
			categories[c] = struct{}{}
		}
	}
	if s.TotalSaleValue > 0 {
		s.Margin = s.TotalSaleValue - s.TotalCost
	}
	s.MarginPercent = money.Percent(s.Margin, s.TotalSaleValue)
	s.TotalCategories = len(categories)
	return s
}

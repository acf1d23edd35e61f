package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// DateRangeDTO rango consultado, en YYYY-MM-DD.
type DateRangeDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReportResponse envoltorio de los reportes de analítica.
type ReportResponse struct {
	Success   bool         `json:"success"`
	DateRange DateRangeDTO `json:"date_range"`
	Data      any          `json:"data"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

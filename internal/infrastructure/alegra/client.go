package alegra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/alegra-reports-api/internal/application/ports"
	"github.com/jhoicas/alegra-reports-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.InvoiceSource   = (*Client)(nil)
	_ ports.InventorySource = (*Client)(nil)
	_ ports.SalesSource     = (*Client)(nil)
	_ ports.UpstreamHealth  = (*Client)(nil)
)

const maxBodyBytes = 32 << 20

// Config parámetros del cliente.
type Config struct {
	BaseURL         string
	User            string // email del usuario de Alegra
	Token           string // token de API
	Timeout         time.Duration
	TimeoutRetries  int // reintentos tras timeout que aplican las operaciones de alto nivel
	InvoicePageSize int
}

// RequestOptions opciones explícitas por petición.
type RequestOptions struct {
	// RetryOnTimeout cuántas veces reintentar solo cuando la petición agota el tiempo.
	RetryOnTimeout int
}

// Client adaptador HTTP hacia la API de Alegra (Basic auth usuario + token).
// Usa net/http de la librería estándar de Go; Alegra no publica SDK para Go.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente. Timeout <= 0 usa 30 s.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.InvoicePageSize <= 0 {
		cfg.InvoicePageSize = 30
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// GetPage hace GET a path con los parámetros tal cual (start, limit y page no se tocan)
// y devuelve el cuerpo JSON. Las fallas se devuelven como *domain.UpstreamError.
func (c *Client) GetPage(ctx context.Context, path string, query url.Values, opts RequestOptions) (json.RawMessage, error) {
	attempts := 1 + max(opts.RetryOnTimeout, 0)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := c.get(ctx, path, query)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrUpstreamTimeout) || ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			c.log.Warn().Str("op", path).Int("attempt", attempt).Msg("timeout en Alegra, reintentando")
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Op: path, Kind: domain.UpstreamUnavailable, Err: fmt.Errorf("crear HTTP request: %w", err)}
	}
	req.SetBasicAuth(c.cfg.User, c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := domain.UpstreamUnavailable
		if isTimeout(err) {
			kind = domain.UpstreamTimeout
		}
		c.log.Error().Err(err).Str("op", path).Str("kind", string(kind)).Msg("llamada a Alegra fallida")
		return nil, &domain.UpstreamError{Op: path, Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		kind := domain.UpstreamUnavailable
		if isTimeout(err) {
			kind = domain.UpstreamTimeout
		}
		return nil, &domain.UpstreamError{Op: path, Kind: kind, Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("op", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(started)).
		Msg("respuesta de Alegra")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &domain.UpstreamError{Op: path, Kind: domain.UpstreamAuth, Status: resp.StatusCode, Err: errors.New(snippet(raw))}
	case resp.StatusCode == http.StatusGatewayTimeout || resp.StatusCode == http.StatusRequestTimeout:
		return nil, &domain.UpstreamError{Op: path, Kind: domain.UpstreamTimeout, Status: resp.StatusCode, Err: errors.New(snippet(raw))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &domain.UpstreamError{Op: path, Kind: domain.UpstreamUnavailable, Status: resp.StatusCode, Err: errors.New(snippet(raw))}
	}
	return raw, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "respuesta vacía"
	}
	return s
}

// decodeRecords acepta un arreglo JSON o un objeto { "data": [...] }.
func decodeRecords(op string, raw json.RawMessage) ([]ports.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []ports.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	switch trimmed[0] {
	case '[':
		var out []ports.Record
		if err := dec.Decode(&out); err != nil {
			return nil, invalidJSON(op, err)
		}
		return out, nil
	case '{':
		var env struct {
			Data []ports.Record `json:"data"`
		}
		if err := dec.Decode(&env); err != nil {
			return nil, invalidJSON(op, err)
		}
		if env.Data == nil {
			return []ports.Record{}, nil
		}
		return env.Data, nil
	}
	return nil, invalidJSON(op, errors.New("se esperaba arreglo u objeto"))
}

// decodeObject decodifica un objeto de totales; si viene envuelto en "data" lo desenvuelve.
func decodeObject(op string, raw json.RawMessage) (ports.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj ports.Record
	if err := dec.Decode(&obj); err != nil {
		return nil, invalidJSON(op, err)
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		return inner, nil
	}
	if obj == nil {
		obj = ports.Record{}
	}
	return obj, nil
}

func invalidJSON(op string, err error) error {
	return &domain.UpstreamError{Op: op, Kind: domain.UpstreamUnavailable, Status: http.StatusOK, Err: fmt.Errorf("JSON inválido: %w", err)}
}

// Ping consulta una factura para validar credenciales y conectividad.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetPage(ctx, "/invoices", url.Values{"limit": {"1"}}, RequestOptions{})
	return err
}

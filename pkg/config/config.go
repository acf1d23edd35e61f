package config

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	Auth   AuthConfig
	HTTP   HTTPConfig
	Alegra AlegraConfig
	Cash   CashConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	Timezone  string // zona horaria de la tienda, por defecto America/Bogota
	LogLevel  string
	StoreName string // encabezado del PDF de cierre de caja
}

// Location devuelve la zona horaria configurada; si no se puede cargar usa UTC-5 fijo (Colombia no tiene horario de verano).
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("COT", -5*60*60)
	}
	return loc
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig política de bloqueo por intentos fallidos.
type AuthConfig struct {
	MaxLoginAttempts   int
	LockoutTimeMinutes int
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AlegraConfig credenciales y límites para la API de Alegra.
type AlegraConfig struct {
	User              string
	Token             string
	BaseURL           string
	TimeoutSeconds    int
	TimeoutRetries    int
	InvoicePageSize   int
	InventoryPageSize int
}

// Timeout devuelve el timeout por petición.
func (c AlegraConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CashConfig parámetros del cierre de caja.
type CashConfig struct {
	BaseTarget           int64
	SmallChangeThreshold int64
	CoinDenominations    []int64
	BillDenominations    []int64
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, ALEGRA_USER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	coins, err := getDenominations(v, "CASH_COIN_DENOMINATIONS", []int64{50, 100, 200, 500, 1000})
	if err != nil {
		return nil, err
	}
	bills, err := getDenominations(v, "CASH_BILL_DENOMINATIONS", []int64{2000, 5000, 10000, 20000, 50000, 100000})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "alegra-reports-api"),
			Timezone:  getString(v, "TIMEZONE", "America/Bogota"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			StoreName: getString(v, "STORE_NAME", "KOAJ Puerto Carreño"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "alegra_reports"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "alegra-reports-api"),
		},
		Auth: AuthConfig{
			MaxLoginAttempts:   getInt(v, "MAX_LOGIN_ATTEMPTS", 5),
			LockoutTimeMinutes: getInt(v, "LOCKOUT_TIME_MINUTES", 15),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Alegra: AlegraConfig{
			User:              getString(v, "ALEGRA_USER", ""),
			Token:             getString(v, "ALEGRA_TOKEN", ""),
			BaseURL:           strings.TrimRight(getString(v, "ALEGRA_API_BASE_URL", "https://app.alegra.com/api/v1"), "/"),
			TimeoutSeconds:    getInt(v, "ALEGRA_TIMEOUT_SECONDS", 30),
			TimeoutRetries:    getInt(v, "ALEGRA_TIMEOUT_RETRIES", 1),
			InvoicePageSize:   getInt(v, "ALEGRA_INVOICE_PAGE_SIZE", 30),
			InventoryPageSize: getInt(v, "ALEGRA_INVENTORY_PAGE_SIZE", 200),
		},
		Cash: CashConfig{
			BaseTarget:           int64(getInt(v, "CASH_BASE_TARGET", 450000)),
			SmallChangeThreshold: int64(getInt(v, "CASH_SMALL_CHANGE_THRESHOLD", 10000)),
			CoinDenominations:    coins,
			BillDenominations:    bills,
		},
	}
	if cfg.Alegra.TimeoutSeconds <= 0 {
		cfg.Alegra.TimeoutSeconds = 30
	}
	if cfg.Alegra.InvoicePageSize <= 0 {
		cfg.Alegra.InvoicePageSize = 30
	}
	if cfg.Alegra.InventoryPageSize <= 0 {
		cfg.Alegra.InventoryPageSize = 200
	}
	return cfg, nil
}

// Validate devuelve las claves obligatorias que faltan. Vacío = configuración completa.
func (c *Config) Validate() []string {
	var missing []string
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Alegra.User == "" {
		missing = append(missing, "ALEGRA_USER")
	}
	if c.Alegra.Token == "" {
		missing = append(missing, "ALEGRA_TOKEN")
	}
	return missing
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDenominations lee una lista "50,100,200" y la devuelve ordenada ascendente.
func getDenominations(v *viper.Viper, key string, def []int64) ([]int64, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def, nil
	}
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: %s contiene una denominación inválida %q", key, part)
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

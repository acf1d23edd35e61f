package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "America/Bogota", cfg.App.Timezone)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, "https://app.alegra.com/api/v1", cfg.Alegra.BaseURL)
	assert.Equal(t, 30, cfg.Alegra.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Alegra.InvoicePageSize)
	assert.Equal(t, 200, cfg.Alegra.InventoryPageSize)
	assert.Equal(t, int64(450000), cfg.Cash.BaseTarget)
	assert.Equal(t, []int64{50, 100, 200, 500, 1000}, cfg.Cash.CoinDenominations)
	assert.Equal(t, []int64{2000, 5000, 10000, 20000, 50000, 100000}, cfg.Cash.BillDenominations)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
}

func TestFromViper_LeeVariables(t *testing.T) {
	v := viper.New()
	v.Set("ALEGRA_API_BASE_URL", "http://localhost:9999/api/v1/")
	v.Set("ALEGRA_TIMEOUT_SECONDS", "5")
	v.Set("CASH_COIN_DENOMINATIONS", "500, 100,50")
	v.Set("HTTP_PORT", "9090")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/v1", cfg.Alegra.BaseURL)
	assert.Equal(t, 5, cfg.Alegra.TimeoutSeconds)
	assert.Equal(t, []int64{50, 100, 500}, cfg.Cash.CoinDenominations)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestFromViper_DenominacionInvalida(t *testing.T) {
	v := viper.New()
	v.Set("CASH_BILL_DENOMINATIONS", "2000,abc")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestValidate_ReportaClavesFaltantes(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"JWT_SECRET", "ALEGRA_USER", "ALEGRA_TOKEN"}, cfg.Validate())

	cfg.JWT.Secret = "s"
	cfg.Alegra.User = "tienda@koaj.co"
	cfg.Alegra.Token = "t"
	assert.Empty(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "reports", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/reports?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", db.ConnectionString())
}

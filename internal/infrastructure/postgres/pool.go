package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/alegra-reports-api/pkg/config"
)

const lookupTimeout = 5 * time.Second

// NewPool crea el pool para usuarios y catálogo KOAJ y verifica la conexión.
// El host se fija a IPv4 cuando se puede: Supabase publica AAAA y los
// contenedores suelen no tener salida IPv6.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ipv4DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = dialIPv4

	// Tráfico bajo: login y catálogo; los reportes no tocan la base.
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// ipv4DSN arma el DSN (DATABASE_URL o DB_*) con el host ya resuelto a IPv4.
// Si la resolución falla deja el hostname tal cual.
func ipv4DSN(cfg config.DBConfig) string {
	if cfg.DatabaseURL == "" {
		if ip, err := lookupIPv4(cfg.Host); err == nil {
			cfg.Host = ip
		}
		return cfg.DSN()
	}
	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return cfg.DatabaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ip, err := lookupIPv4(u.Hostname())
	if err != nil {
		return cfg.DatabaseURL
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := lookupIPv4(host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// publicResolver consulta 8.8.8.8 directamente; dentro de Docker el DNS
// embebido a veces solo devuelve IPv6.
var publicResolver = &net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "udp", "8.8.8.8:53")
	},
}

func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s es IPv6", host)
		}
		return host, nil
	}
	var lastErr error
	for _, r := range []*net.Resolver{net.DefaultResolver, publicResolver} {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		ips, err := r.LookupIP(ctx, "ip4", host)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		for _, ip := range ips {
			if v4 := ip.To4(); v4 != nil {
				return v4.String(), nil
			}
		}
		lastErr = fmt.Errorf("%s sin registro IPv4", host)
	}
	return "", lastErr
}

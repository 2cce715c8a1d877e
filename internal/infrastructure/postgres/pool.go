package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcamargo/factura-pro/pkg/config"
)

// Dimensionado del pool: un API de facturación pequeño-mediano; las
// transacciones de emisión son cortas (insert cabecera + detalles).
const (
	poolMaxConns        = 25
	poolMinConns        = 2
	poolMaxConnLife     = time.Hour
	poolMaxConnIdle     = 30 * time.Minute
	poolHealthCheckTick = time.Minute
)

// NewPool crea el pool de conexiones PostgreSQL. El host se resuelve a IPv4
// cuando existe registro A: contenedores sin IPv6 fallan contra hosts que
// solo publican AAAA.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(preferIPv4DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.ConnConfig.DialFunc = dialIPv4First
	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolMaxConnLife
	poolConfig.MaxConnIdleTime = poolMaxConnIdle
	poolConfig.HealthCheckPeriod = poolHealthCheckTick

	// Codec NUMERIC -> shopspring/decimal en cada conexión del pool.
	// Los importes de factura viajan como decimal de punta a punta; nunca float64.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

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

// preferIPv4DSN devuelve el connection string con el host ya resuelto a IPv4
// si fue posible; si no, el DSN original tal cual.
func preferIPv4DSN(cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return cfg.DatabaseURL
		}
		ipv4, err := lookupIPv4(u.Hostname())
		if err != nil {
			return cfg.DatabaseURL
		}
		port := u.Port()
		if port == "" {
			port = "5432"
		}
		u.Host = net.JoinHostPort(ipv4, port)
		return u.String()
	}
	if ipv4, err := lookupIPv4(cfg.Host); err == nil {
		cfg.Host = ipv4
	}
	return cfg.DSN()
}

// dialIPv4First marca la conexión como tcp4 cuando el host tiene IPv4;
// sin IPv4 se intenta el dial normal y que decida el runtime.
func dialIPv4First(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := lookupIPv4(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// lookupIPv4 resuelve un hostname a su primera dirección IPv4. Si el DNS del
// contenedor solo devuelve AAAA, reintenta contra un resolver público.
func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	if ips, err := net.LookupIP(host); err == nil {
		if ipv4 := firstIPv4(ips); ipv4 != "" {
			return ipv4, nil
		}
	}
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	ips, err := resolver.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return "", err
	}
	if ipv4 := firstIPv4(ips); ipv4 != "" {
		return ipv4, nil
	}
	return "", fmt.Errorf("%s no tiene IPv4", host)
}

func firstIPv4(ips []net.IP) string {
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String()
		}
	}
	return ""
}

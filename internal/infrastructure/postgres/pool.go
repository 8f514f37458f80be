// Package postgres implementa los puertos de persistencia sobre PostgreSQL
// conservando la misma semántica que el adaptador de archivos: el catálogo
// se guarda como snapshot completo (truncate + insert en una transacción) y
// los movimientos en una tabla append-only.
package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
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

// EnsureSchema crea las tablas si no existen. No hay tooling de migraciones:
// el esquema es estable y pequeño.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id            BIGINT PRIMARY KEY,
		name          TEXT NOT NULL,
		unit          TEXT NOT NULL,
		current_stock NUMERIC(20,4) NOT NULL DEFAULT 0,
		minimum_stock NUMERIC(20,4) NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS products_backup (
		snapshot_at   TIMESTAMPTZ NOT NULL,
		id            BIGINT NOT NULL,
		name          TEXT NOT NULL,
		unit          TEXT NOT NULL,
		current_stock NUMERIC(20,4) NOT NULL,
		minimum_stock NUMERIC(20,4) NOT NULL
	);
	CREATE TABLE IF NOT EXISTS movements (
		id           UUID PRIMARY KEY,
		ts           TIMESTAMPTZ NOT NULL,
		product_id   BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		delta        NUMERIC(20,4) NOT NULL,
		stock_before NUMERIC(20,4) NOT NULL,
		stock_after  NUMERIC(20,4) NOT NULL,
		reason       TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_movements_ts ON movements (ts);`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}

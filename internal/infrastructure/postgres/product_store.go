package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ repository.ProductStore = (*ProductStore)(nil)

// ProductStore snapshot-replace del catálogo sobre la tabla products.
// Mantiene el mismo contrato que el adaptador de archivos: Save reemplaza
// el conjunto entero y luego intenta el respaldo con timestamp.
type ProductStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewProductStore construye el adaptador.
func NewProductStore(pool *pgxpool.Pool, log *logger.Logger) *ProductStore {
	return &ProductStore{pool: pool, log: log}
}

// Load devuelve el conjunto completo de productos.
func (s *ProductStore) Load() ([]entity.Product, error) {
	rows, err := s.pool.Query(context.Background(),
		`SELECT id, name, unit, current_stock, minimum_stock FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.CurrentStock, &p.MinimumStock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows products: %w", err)
	}
	return products, nil
}

// Save reemplaza el snapshot completo en una transacción (truncate+insert).
// Tras el commit intenta copiar el snapshot a products_backup; ese respaldo
// es best-effort y nunca invalida el guardado primario.
func (s *ProductStore) Save(products []entity.Product) error {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE products`); err != nil {
		return fmt.Errorf("truncate products: %w", err)
	}
	for _, p := range products {
		if _, err := tx.Exec(ctx,
			`INSERT INTO products (id, name, unit, current_stock, minimum_stock) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.Name, p.Unit, p.CurrentStock, p.MinimumStock,
		); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	s.writeBackup(ctx, products)
	return nil
}

// writeBackup copia el snapshot con timestamp. Fallo tragado, solo log.
func (s *ProductStore) writeBackup(ctx context.Context, products []entity.Product) {
	stamp := time.Now()
	for _, p := range products {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO products_backup (snapshot_at, id, name, unit, current_stock, minimum_stock)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			stamp, p.ID, p.Name, p.Unit, p.CurrentStock, p.MinimumStock,
		); err != nil {
			s.log.Warn().Err(err).Msg("store: no se pudo escribir el respaldo en products_backup")
			return
		}
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementJournal = (*MovementJournal)(nil)

// MovementJournal journal append-only sobre la tabla movements. Nadie
// actualiza ni borra filas: solo INSERT y lecturas ordenadas.
type MovementJournal struct {
	pool *pgxpool.Pool
}

// NewMovementJournal construye el adaptador.
func NewMovementJournal(pool *pgxpool.Pool) *MovementJournal {
	return &MovementJournal{pool: pool}
}

// Append inserta un movimiento.
func (j *MovementJournal) Append(m entity.Movement) error {
	_, err := j.pool.Exec(context.Background(),
		`INSERT INTO movements (id, ts, product_id, product_name, delta, stock_before, stock_after, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Timestamp, m.ProductID, m.ProductName, m.Delta, m.StockBefore, m.StockAfter, m.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// Read devuelve movimientos más antiguo primero; con limit > 0 recorta a la
// cola (los más recientes) manteniendo ese orden.
func (j *MovementJournal) Read(limit int) ([]entity.Movement, error) {
	query := `SELECT id, ts, product_id, product_name, delta, stock_before, stock_after, reason
		FROM movements ORDER BY ts, id`
	args := []any{}
	if limit > 0 {
		query = `SELECT id, ts, product_id, product_name, delta, stock_before, stock_after, reason
			FROM (
				SELECT id, ts, product_id, product_name, delta, stock_before, stock_after, reason
				FROM movements ORDER BY ts DESC, id DESC LIMIT $1
			) tail ORDER BY ts, id`
		args = append(args, limit)
	}

	rows, err := j.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	defer rows.Close()

	var movs []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.ProductID, &m.ProductName,
			&m.Delta, &m.StockBefore, &m.StockAfter, &m.Reason); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movs = append(movs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows movements: %w", err)
	}
	return movs, nil
}

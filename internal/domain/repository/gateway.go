// Package repository define los puertos de persistencia que consume el motor
// de stock. El catálogo y los reportes solo conocen estas interfaces; los
// adaptadores concretos (archivos JSON, PostgreSQL) viven en
// internal/infrastructure.
package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductStore persiste el conjunto completo de productos con estrategia
// snapshot-replace: cada Save sobreescribe el store entero. Adecuado para
// catálogos pequeños donde un store transaccional sería exagerado.
type ProductStore interface {
	// Load devuelve el conjunto actual. Store ausente o corrupto => slice
	// vacío, los adaptadores de archivo no propagan ese fallo (fail-soft).
	Load() ([]entity.Product, error)

	// Save sobreescribe el store completo con el conjunto dado. Tras un
	// guardado primario exitoso intenta una copia de respaldo con timestamp;
	// el fallo del respaldo se traga y no invalida el guardado primario.
	Save(products []entity.Product) error
}

// MovementJournal es la secuencia append-only de movimientos aceptados.
// El journal pertenece a este puerto, no al catálogo: el catálogo registra
// en él pero nunca lo reescribe.
type MovementJournal interface {
	// Append agrega un movimiento al final de la secuencia.
	Append(m entity.Movement) error

	// Read devuelve los movimientos en orden de append (más antiguo primero).
	// Con limit > 0 devuelve solo los últimos limit, manteniendo el orden.
	// Registros individuales malformados se saltan, no abortan la lectura.
	Read(limit int) ([]entity.Movement, error)
}

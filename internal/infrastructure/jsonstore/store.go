// Package jsonstore implementa los puertos de persistencia sobre archivos
// locales: snapshot JSON del catálogo con copias de respaldo con timestamp,
// y journal de movimientos JSONL (un registro por línea).
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ repository.ProductStore = (*ProductStore)(nil)

const backupStamp = "2006-01-02_15-04-05"

// ProductStore snapshot JSON del catálogo completo. Cada Save reescribe el
// archivo entero (write-temp + rename) y luego intenta una copia de
// respaldo; el respaldo es best-effort.
type ProductStore struct {
	dataFile  string
	backupDir string
	log       *logger.Logger
}

// NewProductStore construye el adaptador de archivo.
func NewProductStore(dataFile, backupDir string, log *logger.Logger) *ProductStore {
	return &ProductStore{dataFile: dataFile, backupDir: backupDir, log: log}
}

// Load lee el snapshot. Archivo ausente, vacío o corrupto degrada a
// conjunto vacío sin error: la vista vacía es preferible a tumbar al caller.
func (s *ProductStore) Load() ([]entity.Product, error) {
	raw, err := os.ReadFile(s.dataFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("file", s.dataFile).Msg("store: no se pudo leer el snapshot")
		}
		return nil, nil
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		s.log.Warn().Err(err).Str("file", s.dataFile).Msg("store: snapshot corrupto, usando conjunto vacío")
		return nil, nil
	}
	return products, nil
}

// Save sobreescribe el snapshot completo. Escribe a un temporal y renombra
// para no dejar un snapshot a medias si el proceso muere durante el write.
// Tras el guardado primario intenta la copia de respaldo con timestamp.
func (s *ProductStore) Save(products []entity.Product) error {
	if products == nil {
		products = []entity.Product{}
	}
	raw, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar productos: %w", err)
	}

	dir := filepath.Dir(s.dataFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de datos: %w", err)
	}
	tmp := s.dataFile + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir snapshot temporal: %w", err)
	}
	if err := os.Rename(tmp, s.dataFile); err != nil {
		return fmt.Errorf("reemplazar snapshot: %w", err)
	}

	s.writeBackup(raw)
	return nil
}

// writeBackup guarda una copia con timestamp en el directorio de respaldos.
// Cualquier fallo se traga: el respaldo nunca invalida el guardado primario.
func (s *ProductStore) writeBackup(raw []byte) {
	if s.backupDir == "" {
		return
	}
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		s.log.Warn().Err(err).Str("dir", s.backupDir).Msg("store: no se pudo crear el directorio de respaldos")
		return
	}
	name := fmt.Sprintf("productos_backup_%s.json", time.Now().Format(backupStamp))
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		s.log.Warn().Err(err).Str("file", path).Msg("store: no se pudo escribir el respaldo")
	}
}

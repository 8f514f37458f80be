package jsonstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ repository.MovementJournal = (*MovementJournal)(nil)

// maxJournalLine techo por línea del scanner; un movimiento serializado
// ocupa un par de cientos de bytes, 1 MiB deja margen de sobra.
const maxJournalLine = 1 << 20

// MovementJournal journal append-only en un archivo JSONL: cada línea es un
// movimiento serializado de forma independiente, así una línea corrupta no
// contamina al resto.
type MovementJournal struct {
	path string
	log  *logger.Logger
}

// NewMovementJournal construye el adaptador de archivo.
func NewMovementJournal(path string, log *logger.Logger) *MovementJournal {
	return &MovementJournal{path: path, log: log}
}

// Append agrega un movimiento al final del archivo.
func (j *MovementJournal) Append(m entity.Movement) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio del journal: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("abrir journal: %w", err)
	}
	defer f.Close()

	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("serializar movimiento: %w", err)
	}
	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("escribir movimiento: %w", err)
	}
	return nil
}

// Read devuelve los movimientos en orden de append. Con limit > 0 devuelve
// los últimos limit, manteniendo el orden más antiguo primero. Las líneas
// que no parsean se saltan y se cuentan en el log.
func (j *MovementJournal) Read(limit int) ([]entity.Movement, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("abrir journal: %w", err)
	}
	defer f.Close()

	var movs []entity.Movement
	skipped := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxJournalLine)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var m entity.Movement
		if err := json.Unmarshal(line, &m); err != nil {
			skipped++
			continue
		}
		movs = append(movs, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leer journal: %w", err)
	}
	if skipped > 0 {
		j.log.Warn().Int("skipped", skipped).Str("file", j.path).Msg("journal: líneas corruptas saltadas")
	}

	if limit > 0 && len(movs) > limit {
		movs = movs[len(movs)-limit:]
	}
	return movs, nil
}

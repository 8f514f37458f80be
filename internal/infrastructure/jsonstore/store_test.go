package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newStore(t *testing.T) (*jsonstore.ProductStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := jsonstore.NewProductStore(
		filepath.Join(dir, "productos.json"),
		filepath.Join(dir, "backups"),
		logger.Nop(),
	)
	return store, dir
}

func sample() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Arroz", Unit: "kg", CurrentStock: d("10.5"), MinimumStock: d("2")},
		{ID: 2, Name: "Açúcar", Unit: "kg", CurrentStock: d("0"), MinimumStock: d("1.5")},
	}
}

func TestProductStore_RoundTripIdempotente(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Save(sample()))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Guardar lo cargado y volver a cargar reproduce el mismo conjunto.
	require.NoError(t, store.Save(loaded))
	again, err := store.Load()
	require.NoError(t, err)
	require.Len(t, again, 2)

	for i := range again {
		assert.Equal(t, loaded[i].ID, again[i].ID)
		assert.Equal(t, loaded[i].Name, again[i].Name)
		assert.Equal(t, loaded[i].Unit, again[i].Unit)
		assert.True(t, loaded[i].CurrentStock.Equal(again[i].CurrentStock))
		assert.True(t, loaded[i].MinimumStock.Equal(again[i].MinimumStock))
	}
}

func TestProductStore_ArchivoAusenteDegradaAVacio(t *testing.T) {
	store, _ := newStore(t)
	products, err := store.Load()
	assert.NoError(t, err, "store ausente no es un error")
	assert.Empty(t, products)
}

func TestProductStore_SnapshotCorruptoDegradaAVacio(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "productos.json")
	require.NoError(t, os.WriteFile(dataFile, []byte("{esto no es json"), 0o644))

	store := jsonstore.NewProductStore(dataFile, filepath.Join(dir, "backups"), logger.Nop())
	products, err := store.Load()
	assert.NoError(t, err, "snapshot corrupto degrada a vacío, no a error")
	assert.Empty(t, products)
}

func TestProductStore_GeneraRespaldoConTimestamp(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.Save(sample()))

	backups, err := filepath.Glob(filepath.Join(dir, "backups", "productos_backup_*.json"))
	require.NoError(t, err)
	assert.Len(t, backups, 1, "cada guardado exitoso deja una copia con timestamp")
}

func TestProductStore_RespaldoFallidoNoInvalidaElGuardado(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "productos.json")
	// Un archivo ocupa la ruta del directorio de respaldos: MkdirAll fallará.
	blocked := filepath.Join(dir, "backups")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	store := jsonstore.NewProductStore(dataFile, blocked, logger.Nop())
	require.NoError(t, store.Save(sample()), "el respaldo es best-effort")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 2, "el guardado primario quedó intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Journal JSONL
// ──────────────────────────────────────────────────────────────────────────────

func newJournal(t *testing.T) (*jsonstore.MovementJournal, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "movimientos.jsonl")
	return jsonstore.NewMovementJournal(path, logger.Nop()), path
}

func mov(id string, delta string) entity.Movement {
	return entity.Movement{
		ID:          id,
		Timestamp:   time.Now(),
		ProductID:   1,
		ProductName: "Arroz",
		Delta:       d(delta),
		StockBefore: d("0"),
		StockAfter:  d(delta),
	}
}

func TestJournal_AppendYLecturaEnOrden(t *testing.T) {
	journal, _ := newJournal(t)

	require.NoError(t, journal.Append(mov("a", "1")))
	require.NoError(t, journal.Append(mov("b", "2")))
	require.NoError(t, journal.Append(mov("c", "3")))

	movs, err := journal.Read(0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, "a", movs[0].ID, "la lectura respeta el orden de append")
	assert.Equal(t, "c", movs[2].ID)
	assert.True(t, movs[1].Delta.Equal(d("2")))
}

func TestJournal_LimiteDevuelveLaColaEnOrden(t *testing.T) {
	journal, _ := newJournal(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, journal.Append(mov(id, "1")))
	}

	movs, err := journal.Read(2)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "c", movs[0].ID, "limit recorta al final, más antiguo primero dentro del corte")
	assert.Equal(t, "d", movs[1].ID)
}

func TestJournal_LineasCorruptasSeSaltan(t *testing.T) {
	journal, path := newJournal(t)
	require.NoError(t, journal.Append(mov("a", "1")))

	// Una línea rota en medio del archivo no contamina a las demás.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("### corrupta ###\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, journal.Append(mov("b", "2")))

	movs, err := journal.Read(0)
	require.NoError(t, err)
	require.Len(t, movs, 2, "la línea corrupta se salta sin abortar la lectura")
	assert.Equal(t, "a", movs[0].ID)
	assert.Equal(t, "b", movs[1].ID)
}

func TestJournal_ArchivoAusente(t *testing.T) {
	journal, _ := newJournal(t)
	movs, err := journal.Read(0)
	assert.NoError(t, err)
	assert.Empty(t, movs)
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas). Son las únicas condiciones
// que el motor expone al caller; todo fallo de persistencia secundaria
// (backups, journal) se degrada internamente y solo se registra en el log.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateName     = errors.New("ya existe un producto con ese nombre")
	ErrNotFound          = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidPeriod     = errors.New("período inválido")
)

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrDocumentFinalized: un documento ya finalizado (factura Saved, compra registrada)
	// es inmutable; editarlo volvería a ajustar el inventario dos veces.
	ErrDocumentFinalized = errors.New("documento finalizado, no editable")
)

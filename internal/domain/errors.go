package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente o producto no encontrado")
	ErrPurchaseFailed     = errors.New("no se pudo registrar la compra")
	ErrNotCancellable     = errors.New("la compra no se puede cancelar")
	ErrCancellationFailed = errors.New("no se pudo cancelar la compra")
	ErrStoreUnavailable   = errors.New("almacén de datos no disponible")
)

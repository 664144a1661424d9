package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrReadFailure el backend no respondió la lectura del producto; no se escribió nada.
	ErrReadFailure = errors.New("no se pudo leer el producto")
	// ErrWriteFailure el backend rechazó la escritura del stock del producto.
	ErrWriteFailure = errors.New("no se pudo actualizar el stock del producto")
	// ErrLogWriteFailure falló el registro de auditoría después de un stock ya escrito.
	// Nunca se propaga como fallo de la operación.
	ErrLogWriteFailure = errors.New("no se pudo registrar el movimiento de inventario")
)

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStepNotAllowed     = errors.New("transición de paso no permitida")
	ErrStoreUnavailable   = errors.New("almacén de datos no disponible")
	ErrPartialRead        = errors.New("lectura parcial del almacén de datos")
	ErrFileTooLarge       = errors.New("archivo demasiado grande")
	ErrFileTypeNotAllowed = errors.New("tipo de archivo no permitido")
)

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los adaptadores de persistencia
// devuelven estos sentinelas; los casos de uso los traducen a *Error.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrStorageNotInitialized = errors.New("storage not initialized")
)

// Kind clasifica un error para la capa HTTP.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuth
	KindForbidden
	KindNotFound
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// Error es el error tipado que devuelven los casos de uso.
// Message es seguro para el cliente; Err conserva la causa para logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation error 400 por forma de entrada inválida o incompleta.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict error 400 por violación de unicidad.
func Conflict(msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}

// Auth error 401. El mensaje debe ser idéntico para email inexistente y password incorrecto.
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Forbidden error 403.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound error 404.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Err: ErrNotFound}
}

// Infrastructure error 500 (store caído, timeout, esquema sin provisionar).
func Infrastructure(msg string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msg, Err: cause}
}

// KindOf devuelve el Kind de err, o KindInfrastructure si no es un *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}

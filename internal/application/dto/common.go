package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP: {success:false, message}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de éxito sin datos.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse cuerpo de éxito con datos.
type DataResponse struct {
	Success bool          `json:"success"`
	Data    any           `json:"data"`
	Page    *PageResponse `json:"page,omitempty"`
}

// Flag booleano tolerante para campos que los clientes envían como bool, número o string.
// Verdadero: true, número distinto de 0, string no vacío distinto de "false"/"0", objetos y arrays.
// Más estricto que la veracidad de JavaScript: "false", "0" y strings en blanco cuentan como falso.
type Flag bool

// UnmarshalJSON implementa json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = false
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		*f = s != "" && s != "false" && s != "0"
	default:
		*f = true // objetos y arrays son "truthy"
	}
	return nil
}

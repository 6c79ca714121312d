package auth

import (
	"strings"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
)

// Mensajes de validación de registro.
const (
	MsgMissingFields    = "Missing required fields"
	MsgTermsNotAccepted = "Terms not accepted"
	MsgInvalidRole      = "Invalid role. Must be customer or supplier"
	MsgPasswordTooLong  = "Password must be at most 72 bytes"
)

// NormalizeEmail recorta espacios y pasa a minúsculas: la unicidad no depende de la collation del store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// buildAccount valida la entrada de registro (primera regla que falla gana) y devuelve
// la cuenta con los campos por rol ya mapeados a las columnas compartidas. No calcula el hash.
func buildAccount(in dto.RegisterRequest) (*entity.User, error) {
	role := in.Role // comparación exacta, sin normalizar
	fullName := strings.TrimSpace(in.FullName)
	email := NormalizeEmail(in.Email)

	if strings.TrimSpace(role) == "" || fullName == "" || email == "" || in.Password == "" {
		return nil, domain.Validation(MsgMissingFields)
	}
	if !in.TermsAccepted {
		return nil, domain.Validation(MsgTermsNotAccepted)
	}

	user := &entity.User{
		Role:     role,
		FullName: fullName,
		Email:    email,
		IsActive: true,
	}

	switch role {
	case entity.RoleCustomer:
		user.Mobile = strings.TrimSpace(in.Mobile)
		user.Address = strings.TrimSpace(in.Address)
		if missing := missingFields(
			"mobile", user.Mobile,
			"address", user.Address,
		); len(missing) > 0 {
			return nil, domain.Validation("Missing customer required fields: %s", strings.Join(missing, ", "))
		}
	case entity.RoleSupplier:
		user.BusinessName = strings.TrimSpace(in.BusinessName)
		user.Mobile = strings.TrimSpace(in.ContactNo)
		user.Address = strings.TrimSpace(in.BusinessAddress)
		user.BusinessDocument = strings.TrimSpace(in.BusinessDocument)
		if missing := missingFields(
			"businessName", user.BusinessName,
			"contactNo", user.Mobile,
			"businessAddress", user.Address,
		); len(missing) > 0 {
			return nil, domain.Validation("Missing supplier required fields: %s", strings.Join(missing, ", "))
		}
	default:
		// admin nunca se crea por registro público
		return nil, domain.Validation(MsgInvalidRole)
	}
	return user, nil
}

// missingFields recibe pares (nombre, valor) y devuelve los nombres con valor vacío.
func missingFields(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}

// Package password encapsula el hash de contraseñas con bcrypt (salt aleatorio por hash).
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost factor de trabajo por defecto: una verificación tarda decenas de ms.
const DefaultCost = 10

var (
	// ErrMismatch la contraseña no corresponde al hash.
	ErrMismatch = errors.New("password mismatch")
	// ErrTooLong bcrypt solo admite hasta 72 bytes.
	ErrTooLong = bcrypt.ErrPasswordTooLong
)

// Hasher genera y verifica hashes bcrypt con un costo fijo.
type Hasher struct {
	cost int
}

// NewHasher construye un Hasher; costos fuera de [bcrypt.MinCost, bcrypt.MaxCost] se ajustan al límite.
// cost 0 usa DefaultCost.
func NewHasher(cost int) *Hasher {
	switch {
	case cost == 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost devuelve el factor de trabajo efectivo.
func (h *Hasher) Cost() int { return h.cost }

// Hash devuelve el hash bcrypt de plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifica plain contra hash. Devuelve ErrMismatch si no coincide;
// cualquier otro error indica un hash corrupto.
func (h *Hasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

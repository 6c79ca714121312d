package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/terraflow-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "jane@x.com", "customer", "terraflow-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@x.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti")
}

func TestGenerate_JTIUnico(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "admin", "t", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "admin", "t", 60)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "admin", "t", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a@x.com", "admin", "t", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "a@x.com", "admin", "t", 60)
	assert.Error(t, err)
}

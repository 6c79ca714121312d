package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/terraflow-api/internal/application/analytics"
	"github.com/jhoicas/terraflow-api/internal/application/auth"
	"github.com/jhoicas/terraflow-api/internal/application/usecase"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/terraflow-api/internal/interfaces/http"
	"github.com/jhoicas/terraflow-api/pkg/logger"
	"github.com/jhoicas/terraflow-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type apiEnv struct {
	app    *fiber.App
	store  *memory.Store
	authUC *auth.AuthUseCase
}

func buildAPI(t *testing.T) *apiEnv {
	t.Helper()
	return buildAPIWith(t, false)
}

// buildAPIWith con enforceActive revalida cuentas en login y en rutas admin.
func buildAPIWith(t *testing.T, enforceActive bool) *apiEnv {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	log := logger.Nop()

	authUC := auth.NewAuthUseCase(users, password.NewHasher(bcrypt.MinCost), auth.Config{
		JWT:               auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		QueryTimeout:      time.Second,
		LegacyAdminBypass: true,
		EnforceActive:     enforceActive,
	}, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(users, time.Second),
		ProductUC:   usecase.NewProductUseCase(memory.NewProductRepository(store), time.Second),
		DashboardUC: appanalytics.NewDashboardUseCase(memory.NewAnalyticsRepository(store), time.Second),
		JWTSecret:   testJWTSecret,
		Log:         log,

		EnforceActive:     enforceActive,
		LegacyAdminBypass: true,
	})
	return &apiEnv{app: app, store: store, authUC: authUC}
}

func (e *apiEnv) call(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (e *apiEnv) adminToken(t *testing.T) string {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/login", map[string]string{
		"email": auth.LegacyAdminEmail, "password": auth.LegacyAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, status)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// seededAdmin provisiona un admin real y devuelve su id y token.
func (e *apiEnv) seededAdmin(t *testing.T) (int64, string) {
	t.Helper()
	created, err := e.authUC.EnsureAdmin(context.Background(), "ops@terraflow.com", "opspass1", "Ops")
	require.NoError(t, err)
	require.True(t, created)

	status, body := e.call(t, http.MethodPost, "/api/login", map[string]string{
		"email": "ops@terraflow.com", "password": "opspass1",
	}, "")
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return int64(user["id"].(float64)), tok
}

func janePayload() map[string]any {
	return map[string]any{
		"role":          "customer",
		"fullName":      "Jane Doe",
		"email":         "jane@x.com",
		"password":      "secret1",
		"termsAccepted": true,
		"mobile":        "555-0100",
		"address":       "1 Main St",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroYLoginJaneDoe(t *testing.T) {
	e := buildAPI(t)

	status, body := e.call(t, http.MethodPost, "/api/register", janePayload(), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, auth.MsgRegistered, body["message"])
	assert.IsType(t, float64(0), body["userId"])

	status, body = e.call(t, http.MethodPost, "/api/login", map[string]string{
		"email": "jane@x.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", user["email"])
	assert.Equal(t, "customer", user["role"])
	assert.Equal(t, "Jane Doe", user["full_name"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
}

func TestAPI_RegistroRolMerchantNoInserta(t *testing.T) {
	e := buildAPI(t)
	payload := janePayload()
	payload["role"] = "merchant"

	status, body := e.call(t, http.MethodPost, "/api/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, auth.MsgInvalidRole, body["message"])
	assert.Equal(t, 0, e.store.UserCount())
}

func TestAPI_RegistroTermsComoString(t *testing.T) {
	e := buildAPI(t)
	payload := janePayload()
	payload["termsAccepted"] = "true"

	status, _ := e.call(t, http.MethodPost, "/api/register", payload, "")
	assert.Equal(t, http.StatusOK, status)

	payload["email"] = "otra@x.com"
	payload["termsAccepted"] = false
	status, body := e.call(t, http.MethodPost, "/api/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, auth.MsgTermsNotAccepted, body["message"])
}

func TestAPI_RegistroDuplicadoYCuerpoInvalido(t *testing.T) {
	e := buildAPI(t)
	status, _ := e.call(t, http.MethodPost, "/api/register", janePayload(), "")
	require.Equal(t, http.StatusOK, status)

	status, body := e.call(t, http.MethodPost, "/api/register", janePayload(), "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, auth.MsgEmailExists, body["message"])

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	e := buildAPI(t)
	_, _ = e.call(t, http.MethodPost, "/api/register", janePayload(), "")

	s1, b1 := e.call(t, http.MethodPost, "/api/login", map[string]string{"email": "jane@x.com", "password": "bad"}, "")
	s2, b2 := e.call(t, http.MethodPost, "/api/login", map[string]string{"email": "nadie@x.com", "password": "bad"}, "")
	assert.Equal(t, http.StatusUnauthorized, s1)
	assert.Equal(t, http.StatusUnauthorized, s2)
	assert.Equal(t, b1, b2)

	s3, b3 := e.call(t, http.MethodPost, "/api/login", map[string]string{"email": "jane@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, s3)
	assert.Equal(t, auth.MsgMissingCredentials, b3["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AdminRequiereTokenYRol(t *testing.T) {
	e := buildAPI(t)
	_, _ = e.call(t, http.MethodPost, "/api/register", janePayload(), "")
	_, login := e.call(t, http.MethodPost, "/api/login", map[string]string{"email": "jane@x.com", "password": "secret1"}, "")
	customerTok, _ := login["token"].(string)

	status, _ := e.call(t, http.MethodGet, "/api/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = e.call(t, http.MethodGet, "/api/admin/users", nil, customerTok)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := e.call(t, http.MethodGet, "/api/admin/users", nil, e.adminToken(t))
	assert.Equal(t, http.StatusOK, status)
	data, _ := body["data"].([]any)
	assert.Len(t, data, 1)
}

func TestAPI_AdminGestionUsuarios(t *testing.T) {
	e := buildAPI(t)
	tok := e.adminToken(t)
	_, reg := e.call(t, http.MethodPost, "/api/register", janePayload(), "")
	id := int64(reg["userId"].(float64))

	status, _ := e.call(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/status", id), map[string]bool{"is_active": false}, tok)
	assert.Equal(t, http.StatusOK, status)

	status, body := e.call(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/status", id), map[string]any{}, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "is_active is required", body["message"])

	status, _ = e.call(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", id), map[string]string{"role": "supplier"}, tok)
	assert.Equal(t, http.StatusOK, status)

	status, body = e.call(t, http.MethodGet, "/api/admin/users?role=supplier", nil, tok)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	row := data[0].(map[string]any)
	assert.Equal(t, false, row["is_active"])

	status, _ = e.call(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil, tok)
	assert.Equal(t, http.StatusOK, status)

	for _, path := range []string{"/api/admin/users/999/status", "/api/admin/users/999/role"} {
		status, _ = e.call(t, http.MethodPut, path, map[string]any{"is_active": true, "role": "admin"}, tok)
		assert.Equal(t, http.StatusNotFound, status, path)
	}
	status, _ = e.call(t, http.MethodDelete, "/api/admin/users/999", nil, tok)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = e.call(t, http.MethodDelete, "/api/admin/users/abc", nil, tok)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_AdminObtenerUsuarioPorID(t *testing.T) {
	e := buildAPI(t)
	tok := e.adminToken(t)
	_, reg := e.call(t, http.MethodPost, "/api/register", janePayload(), "")
	id := int64(reg["userId"].(float64))

	status, body := e.call(t, http.MethodGet, fmt.Sprintf("/api/admin/users/%d", id), nil, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "jane@x.com", body["email"])
	assert.Equal(t, "customer", body["role"])
	assert.Equal(t, true, body["is_active"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	status, body = e.call(t, http.MethodGet, "/api/admin/users/999", nil, tok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["message"])

	status, _ = e.call(t, http.MethodGet, "/api/admin/users/abc", nil, tok)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_AdminNoPuedeAutoBloquearse(t *testing.T) {
	e := buildAPI(t)
	id, tok := e.seededAdmin(t)
	self := fmt.Sprintf("/api/admin/users/%d", id)

	status, body := e.call(t, http.MethodDelete, self, nil, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cannot delete your own account", body["message"])

	status, body = e.call(t, http.MethodPut, self+"/status", map[string]bool{"is_active": false}, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cannot disable your own account", body["message"])

	status, body = e.call(t, http.MethodPut, self+"/role", map[string]string{"role": "customer"}, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cannot remove your own admin role", body["message"])

	// operaciones que no reducen el acceso siguen permitidas
	status, _ = e.call(t, http.MethodPut, self+"/status", map[string]bool{"is_active": true}, tok)
	assert.Equal(t, http.StatusOK, status)
	status, _ = e.call(t, http.MethodPut, self+"/role", map[string]string{"role": "admin"}, tok)
	assert.Equal(t, http.StatusOK, status)

	// el admin fijo comparte el id sintético 1 pero no es esa cuenta
	require.Equal(t, auth.LegacyAdminID, id)
	status, _ = e.call(t, http.MethodDelete, self, nil, e.adminToken(t))
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_TokenVigenteDeCuentaDeshabilitada(t *testing.T) {
	e := buildAPIWith(t, true)
	id, opsTok := e.seededAdmin(t)
	legacy := e.adminToken(t)
	path := fmt.Sprintf("/api/admin/users/%d", id)

	status, _ := e.call(t, http.MethodGet, "/api/admin/users", nil, opsTok)
	require.Equal(t, http.StatusOK, status)

	status, _ = e.call(t, http.MethodPut, path+"/status", map[string]bool{"is_active": false}, legacy)
	require.Equal(t, http.StatusOK, status)
	status, body := e.call(t, http.MethodGet, "/api/admin/users", nil, opsTok)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, auth.MsgAccountDisabled, body["message"])

	status, _ = e.call(t, http.MethodPut, path+"/status", map[string]bool{"is_active": true}, legacy)
	require.Equal(t, http.StatusOK, status)
	status, _ = e.call(t, http.MethodPut, path+"/role", map[string]string{"role": "customer"}, legacy)
	require.Equal(t, http.StatusOK, status)
	status, body = e.call(t, http.MethodGet, "/api/admin/users", nil, opsTok)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden: insufficient role", body["message"])

	status, _ = e.call(t, http.MethodDelete, path, nil, legacy)
	require.Equal(t, http.StatusOK, status)
	status, body = e.call(t, http.MethodGet, "/api/admin/users", nil, opsTok)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Account no longer exists", body["message"])
}

func TestAPI_SinRevalidacionElRolSaleDelToken(t *testing.T) {
	e := buildAPI(t)
	id, opsTok := e.seededAdmin(t)

	status, _ := e.call(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", id), map[string]string{"role": "customer"}, e.adminToken(t))
	require.Equal(t, http.StatusOK, status)

	status, _ = e.call(t, http.MethodGet, "/api/admin/users", nil, opsTok)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_AdminProductosYDashboard(t *testing.T) {
	e := buildAPI(t)
	tok := e.adminToken(t)

	status, body := e.call(t, http.MethodPost, "/api/admin/products", map[string]any{
		"name": "Teja colonial", "category": "roofing", "price": 2500, "stock_quantity": 0, "minimum_stock": 10,
	}, tok)
	require.Equal(t, http.StatusCreated, status)
	created := body["data"].(map[string]any)
	id := int64(created["id"].(float64))
	assert.Equal(t, "out_of_stock", created["stock_status"])

	status, _ = e.call(t, http.MethodPost, "/api/admin/products", map[string]any{"name": "", "price": 1}, tok)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = e.call(t, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), map[string]any{"stock_quantity": 4}, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "low_stock", body["data"].(map[string]any)["stock_status"])

	e.store.AddOrder(memory.Order{Status: "pending", TotalAmount: decimal.NewFromInt(5000), Items: map[int64]int{id: 2}})

	status, body = e.call(t, http.MethodGet, "/api/admin/dashboard-stats", nil, tok)
	require.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(1), stats["totalProducts"])
	assert.Equal(t, float64(1), stats["pendingOrders"])

	status, body = e.call(t, http.MethodGet, "/api/admin/production-recommendations", nil, tok)
	require.Equal(t, http.StatusOK, status)
	recs := body["data"].([]any)
	require.Len(t, recs, 1)
	rec := recs[0].(map[string]any)
	assert.Equal(t, "Teja colonial", rec["product_name"])
	assert.Equal(t, "Urgent", rec["priority"])

	status, _ = e.call(t, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), nil, tok)
	assert.Equal(t, http.StatusOK, status)
	status, _ = e.call(t, http.MethodGet, fmt.Sprintf("/api/admin/products/%d", id), nil, tok)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_RequestIDEnRespuesta(t *testing.T) {
	e := buildAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

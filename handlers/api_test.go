package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-api/middleware"
	"finance-api/routes"
	"finance-api/services"
	"finance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	tokens := utils.NewTokenManager("test-secret", time.Minute)
	svc := services.NewFinanceService(services.NewMemoryStore(), tokens, nil)

	router := gin.New()
	v1 := router.Group("/api/v1")
	routes.SetupAuthRoutes(v1, svc)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	routes.SetupUserRoutes(protected, svc)
	routes.SetupCategoryRoutes(protected, svc)
	routes.SetupTransactionRoutes(protected, svc)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestRegisterStatuses(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "b@x.com", "password": strings.Repeat("a", 73),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginStatuses(t *testing.T) {
	router := newTestRouter()
	registerAndLogin(t, router, "a@x.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "nobody@x.com", "password": "secret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFullFlowThroughHTTP(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "a@x.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/categories", token, gin.H{"name": "Food"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = doJSON(t, router, http.MethodPost, "/api/v1/transactions", token, gin.H{
		"amount":           "500.00",
		"category_id":      category.ID,
		"transaction_date": "2024-01-15T12:00:00Z",
		"type":             "expense",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transactions/stats?start_date=2024-01-01&end_date=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalIncome  string `json:"total_income"`
		TotalExpense string `json:"total_expense"`
		Balance      string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "0", stats.TotalIncome)
	assert.Equal(t, "500", stats.TotalExpense)
	assert.Equal(t, "-500", stats.Balance)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transactions/chart?start_date=2024-01-01&end_date=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Food")
}

func TestChartNoData(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "a@x.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/transactions/chart?start_date=2024-01-01&end_date=2024-01-31", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no_data")
}

func TestRenameCategoryIsolation(t *testing.T) {
	router := newTestRouter()
	aliceToken := registerAndLogin(t, router, "alice@x.com")
	bobToken := registerAndLogin(t, router, "bob@x.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/categories", aliceToken, gin.H{"name": "Food"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = doJSON(t, router, http.MethodPut, "/api/v1/categories/"+category.ID, bobToken, gin.H{"name": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/categories", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

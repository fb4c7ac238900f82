package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetUserEmail(c)})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Minute)
	router := newAuthRouter(tokens)

	token, err := tokens.Generate("a@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Minute)
	router := newAuthRouter(tokens)

	expired, err := utils.NewTokenManager("test-secret", time.Nanosecond).Generate("a@x.com")
	require.NoError(t, err)
	foreign, err := utils.NewTokenManager("other-secret", time.Minute).Generate("a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

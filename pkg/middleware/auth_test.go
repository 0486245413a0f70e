package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"post-composer/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func whoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey)})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, err := jwtService.GenerateToken("uid-1", "author")
	require.NoError(t, err)

	router := setupTestRouter()
	router.Use(AuthMiddleware(jwtService))
	router.GET("/test", whoAmI)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "uid-1", response["user_id"])
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	cases := map[string]string{
		"no header":      "",
		"invalid format": "InvalidFormat token",
		"invalid token":  "Bearer invalid-token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			router := setupTestRouter()
			router.Use(AuthMiddleware(jwtService))
			router.GET("/test", whoAmI)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestIdentityMiddleware_ResolvesUser(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, err := jwtService.GenerateToken("uid-7", "author")
	require.NoError(t, err)

	router := setupTestRouter()
	router.Use(IdentityMiddleware(jwtService))
	router.GET("/test", whoAmI)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uid-7")
}

func TestIdentityMiddleware_AnonymousPassesThrough(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(IdentityMiddleware(jwtService))
	router.GET("/test", whoAmI)

	for _, header := range []string{"", "Bearer expired-token"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":""}`, w.Body.String())
	}
}

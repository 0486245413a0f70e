package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	router := setupTestRouter()
	router.Use(SessionMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SessionIDKey))
	})
	return router
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	sessionRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, w.Body.String())
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	sessionRouter().ServeHTTP(w, req)

	assert.Equal(t, "sess-1", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddleware_HeaderWins(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set(SessionHeader, "sess-header")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-cookie"})
	sessionRouter().ServeHTTP(w, req)

	assert.Equal(t, "sess-header", w.Body.String())
}

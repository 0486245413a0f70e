package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"post-composer/pkg/jwt"
	"post-composer/pkg/logger"
	"post-composer/pkg/middleware"
	composerHTTP "post-composer/services/composer/internal/controller/http"
	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/upload"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOrigins = []string{"http://localhost:3000"}

// stubComposer answers every operation with an empty success.
type stubComposer struct{}

func (stubComposer) GetDraft(ctx context.Context, sessionID string) (*entity.Draft, error) {
	return entity.NewDraft(sessionID), nil
}

func (stubComposer) UpdateTitle(ctx context.Context, sessionID, title string) (*entity.Draft, error) {
	return &entity.Draft{SessionID: sessionID, Title: title}, nil
}

func (stubComposer) UpdateContent(ctx context.Context, sessionID, content string) (*entity.Draft, error) {
	return &entity.Draft{SessionID: sessionID, Content: content}, nil
}

func (stubComposer) SelectMedia(ctx context.Context, sessionID string, media *string) (*entity.Draft, error) {
	return &entity.Draft{SessionID: sessionID, Media: media}, nil
}

func (stubComposer) ToggleMode(ctx context.Context, sessionID string) (*entity.Draft, error) {
	return &entity.Draft{SessionID: sessionID, Markdown: true}, nil
}

func (stubComposer) Preview(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

func (stubComposer) RenderPreview(draft *entity.Draft) (string, error) {
	return "", nil
}

func (stubComposer) EditorConfig() entity.EditorConfig {
	return entity.EditorConfig{UploadURL: uploadPath}
}

func (stubComposer) UploadImage(ctx context.Context, sessionID string, loader upload.Loader) (*upload.Result, error) {
	return &upload.Result{Default: "https://cdn.test/images/cat.png"}, nil
}

func (stubComposer) Submit(ctx context.Context, sessionID, userID string) (*entity.Post, error) {
	return &entity.Post{PostNumber: 1, UserID: userID}, nil
}

func setupTestRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	handler := composerHTTP.NewComposerHandler(stubComposer{}, logger.New())
	return newRouter(handler, jwt.NewService("test-secret"), testOrigins, middleware.RateLimitMiddleware(redisClient, limit, time.Minute))
}

func send(router *gin.Engine, method, path, body string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "sess-1")
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRouter_DraftEditsAreNotRateLimited(t *testing.T) {
	router := setupTestRouter(t, 120)

	// One editor change event per keystroke, well past the per-minute limit
	for i := 0; i < 300; i++ {
		code := send(router, "PUT", "/api/v1/composer/draft/content", `{"content":"<p>typing</p>"}`)
		require.Equal(t, http.StatusOK, code, "content update %d", i+1)
	}
	for i := 0; i < 150; i++ {
		require.Equal(t, http.StatusOK, send(router, "PUT", "/api/v1/composer/draft/title", `{"title":"t"}`))
	}
	assert.Equal(t, http.StatusOK, send(router, "GET", "/api/v1/composer/draft", ""))
}

func TestRouter_SubmitIsRateLimited(t *testing.T) {
	router := setupTestRouter(t, 120)

	for i := 0; i < 120; i++ {
		require.Equal(t, http.StatusCreated, send(router, "POST", "/api/v1/composer/submit", ""), "submit %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, send(router, "POST", "/api/v1/composer/submit", ""))

	// Edits keep working once submit is throttled
	assert.Equal(t, http.StatusOK, send(router, "PUT", "/api/v1/composer/draft/content", `{"content":"<p>x</p>"}`))
}

func TestRouter_UploadsRequireAuthAndAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	jwtService := jwt.NewService("test-secret")
	handler := composerHTTP.NewComposerHandler(stubComposer{}, logger.New())
	router := newRouter(handler, jwtService, testOrigins, middleware.RateLimitMiddleware(redisClient, 2, time.Minute))

	assert.Equal(t, http.StatusUnauthorized, send(router, "POST", "/api/v1/composer/uploads", ""))

	token, err := jwtService.GenerateToken("uid-1", "author")
	require.NoError(t, err)

	postUpload := func() int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/composer/uploads", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w.Code
	}

	// No file in the form, so the handler answers 400 once the limiter lets it through
	assert.Equal(t, http.StatusBadRequest, postUpload())
	assert.Equal(t, http.StatusBadRequest, postUpload())
	assert.Equal(t, http.StatusTooManyRequests, postUpload())
}

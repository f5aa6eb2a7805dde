package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/models"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
		TokenTTL:   time.Hour,
		R2:         config.R2Config{Region: "auto"},
	}

	db, err := config.Connect(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r, db, cfg)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, r *gin.Engine, username, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret123",
		"fullName": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := newTestServer(t)

	registerUser(t, r, "alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
		"fullName": "Alice Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already in use", decode(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
		"fullName": "Alice Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already taken", decode(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")
}

func TestRegister_RejectsBadPayload(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "bob",
		"email":    "not-an-email",
		"password": "secret123",
		"fullName": "Bob",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "tiny",
		"fullName": "Bob",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStories_RequireAuthForMutations(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/stories", "", gin.H{
		"storyImageUrl": "https://cdn.example.com/s.jpg",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/stories", "garbage-token", gin.H{
		"storyImageUrl": "https://cdn.example.com/s.jpg",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStoryLifecycle(t *testing.T) {
	r, db := newTestServer(t)
	author := registerUser(t, r, "alice", "alice@example.com")
	viewer := registerUser(t, r, "bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/stories", author, gin.H{
		"storyId":       "s1",
		"storyImageUrl": "https://cdn.example.com/s1.jpg",
		"caption":       "sunset",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Public listing shows the fresh story.
	w = doJSON(t, r, http.MethodGet, "/api/stories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "s1", listed[0]["storyId"])

	// Viewing twice stays a 200 and records one viewer.
	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/stories/s1/view", viewer, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/stories/s1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	viewers, ok := decode(t, w)["viewers"].([]any)
	require.True(t, ok)
	assert.Len(t, viewers, 1)

	// Only the author can delete.
	w = doJSON(t, r, http.MethodDelete, "/api/stories/s1", viewer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Force the story past its expiry; reads must report it gone even
	// though the row is still in the table.
	past := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, db.Model(&models.Story{}).Where("id = ?", "s1").
		Update("expiry_timestamp", past).Error)

	w = doJSON(t, r, http.MethodGet, "/api/stories/s1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Story has expired", decode(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/stories/s1/view", viewer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	// The sweep physically removes it, after which the story is plain
	// not-found.
	w = doJSON(t, r, http.MethodDelete, "/api/stories/cleanup/expired", author, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["deletedCount"])

	w = doJSON(t, r, http.MethodGet, "/api/stories/s1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Story not found", decode(t, w)["error"])
}

func TestPostLikeCommentFlow(t *testing.T) {
	r, _ := newTestServer(t)
	author := registerUser(t, r, "alice", "alice@example.com")
	fan := registerUser(t, r, "bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/posts", author, gin.H{
		"postId":  "p1",
		"caption": "first post",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/posts/p1/like", fan, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Liking again surfaces the constraint.
	w = doJSON(t, r, http.MethodPost, "/api/posts/p1/like", fan, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/posts/p1/comments", fan, gin.H{
		"text": "nice one",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/posts/p1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["likesCount"])
	assert.Equal(t, float64(1), body["commentsCount"])

	// Deleting someone else's post is forbidden.
	w = doJSON(t, r, http.MethodDelete, "/api/posts/p1", fan, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

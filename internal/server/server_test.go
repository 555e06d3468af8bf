package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/middleware"
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// recordingBinder is a media.Binder for handler tests.
type recordingBinder struct {
	releaseCalls []string
}

func (b *recordingBinder) Bind(_ context.Context, payload string) (string, error) {
	return "https://res.example.com/img/upload/v1/bound-" + payload + ".png", nil
}

func (b *recordingBinder) Release(_ context.Context, resourceURL string) {
	b.releaseCalls = append(b.releaseCalls, resourceURL)
}

var testCfg = &config.Config{
	JWTSecret: "test_secret",
	Port:      "0",
}

func TestMain(m *testing.M) {
	middleware.InitMiddleware(testCfg)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*Server, *fiber.App, *recordingBinder) {
	t.Helper()

	cfg := testCfg

	db, err := database.ConnectTest()
	require.NoError(t, err)

	binder := &recordingBinder{}
	srv, err := NewServerWithDeps(cfg, db, nil, binder)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, binder
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, models.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope models.APIResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// Error responses use a different shape; decoding into the envelope is
	// best-effort and callers assert on status first.
	_ = json.Unmarshal(raw, &envelope)
	return resp, envelope
}

func signupUser(t *testing.T, app *fiber.App, username string) (token string, userID uint) {
	t.Helper()
	resp, envelope := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := envelope.Data.(map[string]interface{})
	token = data["token"].(string)
	user := data["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()
	srv, app, _ := newTestServer(t)

	resp, envelope := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"full_name": "Alice A",
		"password":  "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, fiber.StatusCreated, envelope.StatusCode)

	data := envelope.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	// The hash never serializes.
	_, exposed := user["password"]
	assert.False(t, exposed)

	// The stored credential is a hash, not the plaintext.
	stored, err := srv.userRepo.GetWithCredentials(context.Background(), uint(user["id"].(float64)))
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))

	// Login works with the username...
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// ...and with the email.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Wrong password is a 401 with no hint which part was wrong.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"Missing Fields", map[string]string{"username": "alice"}},
		{"Bad Email", map[string]string{"username": "alice", "email": "nope", "password": "password123"}},
		{"Short Password", map[string]string{"username": "alice", "email": "a@example.com", "password": "abc"}},
		{"Bad Username", map[string]string{"username": "a!", "email": "a@example.com", "password": "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	signupUser(t, app, "alice")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	// Duplicates surface as 400 per the API contract.
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetMe(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	token, _ := signupUser(t, app, "alice")

	resp, envelope := doJSON(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user := envelope.Data.(map[string]interface{})
	assert.Equal(t, "alice", user["username"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFollowToggleAndNotifications(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")

	// Follow, then verify bob's profile and notification.
	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/users/follow/%d", bobID), aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, app, fiber.MethodGet, "/api/users/profile/bob", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := envelope.Data.(map[string]interface{})
	assert.Len(t, profile["followers"], 1)

	resp, envelope = doJSON(t, app, fiber.MethodGet, "/api/notifications/", bobToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	notifications := envelope.Data.([]interface{})
	require.Len(t, notifications, 1)
	assert.Equal(t, "follow", notifications[0].(map[string]interface{})["type"])

	// Same endpoint toggles back to unfollowed.
	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/users/follow/%d", bobID), aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, envelope = doJSON(t, app, fiber.MethodGet, "/api/users/profile/bob", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile = envelope.Data.(map[string]interface{})
	assert.Empty(t, profile["followers"])
}

func TestFollowSelf(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	token, id := signupUser(t, app, "alice")

	resp, _ := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/users/follow/%d", id), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPostLifecycle(t *testing.T) {
	t.Parallel()
	_, app, binder := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")

	// Create with an image payload; the stored post carries the bound URL.
	resp, envelope := doJSON(t, app, fiber.MethodPost, "/api/posts/create", aliceToken, map[string]string{
		"text": "hello world",
		"img":  "payload",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := envelope.Data.(map[string]interface{})
	postID := uint(created["id"].(float64))
	assert.Equal(t, "https://res.example.com/img/upload/v1/bound-payload.png", created["img"])

	// Bob likes it; the liker list comes back.
	resp, envelope = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/posts/like/%d", postID), bobToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	likers := envelope.Data.([]interface{})
	require.Len(t, likers, 1)

	// Liked-posts feed for bob contains the post.
	resp, envelope = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/posts/likes/%d", bobID), bobToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, envelope.Data.([]interface{}), 1)

	// Comment.
	resp, envelope = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/posts/comment/%d", postID), bobToken, map[string]string{
		"text": "nice post",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := envelope.Data.(map[string]interface{})
	assert.Len(t, updated["comments"], 1)

	// Bob cannot delete alice's post; the image stays bound.
	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), bobToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, binder.releaseCalls)

	// Alice can, and the image is released.
	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, binder.releaseCalls, 1)

	// The author feed is empty again.
	resp, envelope = doJSON(t, app, fiber.MethodGet, "/api/posts/user/alice", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, envelope.Data.([]interface{}))
}

func TestFollowingFeed(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")
	_, _ = signupUser(t, app, "carol")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/posts/create", bobToken, map[string]string{"text": "from bob"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/users/follow/%d", bobID), aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, app, fiber.MethodGet, "/api/posts/following", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	posts := envelope.Data.([]interface{})
	require.Len(t, posts, 1)
	post := posts[0].(map[string]interface{})
	assert.Equal(t, "from bob", post["text"])
	assert.Equal(t, "bob", post["user"].(map[string]interface{})["username"])
}

func TestInvalidIDParam(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	token, _ := signupUser(t, app, "alice")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/posts/like/abc", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/enhancify/auth-service/internal/core/domain"
	logicv1 "github.com/enhancify/auth-service/internal/logic/v1"
)

// memUserRepo is an in-memory domain.UserRepository for handler tests.
type memUserRepo struct {
	users map[string]*domain.User
	byID  map[string]*domain.User
	finds int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users: make(map[string]*domain.User),
		byID:  make(map[string]*domain.User),
	}
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.finds++
	return m.users[username], nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.finds++
	return m.byID[id], nil
}

func (m *memUserRepo) Insert(_ context.Context, username, passwordHash string) (string, error) {
	if _, taken := m.users[username]; taken {
		return "", domain.ErrDuplicateKey
	}
	id := "68b000000000000000000001"
	u := &domain.User{ID: id, Username: username, PasswordHash: passwordHash}
	m.users[username] = u
	m.byID[id] = u
	return id, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemUserRepo()
	tokens := logicv1.NewTokenIssuer([]byte("test-secret"), 48*time.Hour)
	auth := logicv1.NewAuthService(repo, tokens, bcrypt.MinCost)

	r := gin.New()
	NewHandler(auth).RegisterRoutes(r.Group("/users"))
	return r, repo
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSignup(t *testing.T) {
	t.Parallel()
	r, repo := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User Signed Up Successfully", body["message"])
	assert.NotContains(t, body, "token", "signup must not imply an authenticated session")
	require.NotNil(t, repo.users["alice01"])
}

func TestSignup_Duplicate(t *testing.T) {
	t.Parallel()
	r, repo := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "").Code)
	originalHash := repo.users["alice01"].PasswordHash

	w := doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"other12"}`, "")
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User Already Exists", body["error"])
	assert.Equal(t, originalHash, repo.users["alice01"].PasswordHash)
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"x","password":"secret1"}`},
		{"short password", `{"username":"alice01","password":"y"}`},
		{"missing fields", `{}`},
		{"malformed json", `{"username":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/users/signup", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "").Code)

	w := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice01","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User Logged in Successfully", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "").Code)

	w := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice01","password":"wrong12"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Unauthorized Access", body["error"])
	assert.NotContains(t, body, "token")
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/users/login", `{"username":"nouser1","password":"whatever"}`, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not Signed Up", decodeBody(t, w)["error"])
}

func TestGetUser_Gated(t *testing.T) {
	t.Parallel()
	r, repo := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "").Code)

	login := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice01","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, login.Code)
	token := decodeBody(t, login)["token"].(string)

	id := repo.users["alice01"].ID
	w := doJSON(r, http.MethodGet, "/users/"+id, "", token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "User details fetched Successfully", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice01", user["username"])
	assert.Equal(t, id, user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
}

func TestGetUser_MissingToken(t *testing.T) {
	t.Parallel()
	r, repo := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/users/abc123", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing JWT Token", decodeBody(t, w)["error"])
	assert.Zero(t, repo.finds, "request without a token must be rejected before any store access")
}

func TestGetUser_WrongSignature(t *testing.T) {
	t.Parallel()
	r, repo := newTestRouter(t)

	// Syntactically valid token signed with a different secret.
	forged, err := logicv1.NewTokenIssuer([]byte("other-secret"), time.Hour).Issue("alice01")
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/users/abc123", "", forged)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid JWT Token", decodeBody(t, w)["error"])
	assert.Zero(t, repo.finds)
}

func TestGetUser_TokenForDeletedUser(t *testing.T) {
	t.Parallel()
	r, repo := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "").Code)
	login := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice01","password":"secret1"}`, "")
	token := decodeBody(t, login)["token"].(string)

	id := repo.users["alice01"].ID
	delete(repo.users, "alice01")

	w := doJSON(r, http.MethodGet, "/users/"+id, "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUser_UnknownID(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		doJSON(r, http.MethodPost, "/users/signup", `{"username":"alice01","password":"secret1"}`, "").Code)
	login := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice01","password":"secret1"}`, "")
	token := decodeBody(t, login)["token"].(string)

	w := doJSON(r, http.MethodGet, "/users/000000000000000000000000", "", token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not Signed Up", decodeBody(t, w)["error"])
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"user_register/internal/metrics"
	"user_register/internal/model"
	"user_register/internal/repository"
	"user_register/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenRepo struct {
	repository.MemoryUserRepository
}

func (b *brokenRepo) Create(context.Context, *model.User) error {
	return errors.New("lost connection to server")
}

func setupRouter(t *testing.T, repo repository.UserRepository) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewRegisterHandler(service.NewRegisterService(repo), logger, metrics.New(prometheus.NewRegistry()))
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func postRegister(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler_Register(t *testing.T) {
	r := setupRouter(t, repository.NewMemoryUserRepository())

	w := postRegister(r, `{"name":"Ann","email":"ann@x.com","password":"p1","phone":"555"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]string{"message": "User registered successfully!"}, decodeBody(t, w))
}

func TestRegisterHandler_Register_Duplicate(t *testing.T) {
	r := setupRouter(t, repository.NewMemoryUserRepository())

	first := postRegister(r, `{"name":"Ann","email":"ann@x.com","password":"p1","phone":"555"}`)
	second := postRegister(r, `{"name":"Ann","email":"ann@x.com","password":"p1","phone":"555"}`)
	third := postRegister(r, `{"name":"Zed","email":"ann@x.com","password":"other","phone":"1"}`)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, map[string]string{"error": "Email already exists"}, decodeBody(t, second))
	assert.Equal(t, http.StatusBadRequest, third.Code)
}

func TestRegisterHandler_Register_MissingEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	r := setupRouter(t, repo)

	w := postRegister(r, `{"name":"Ann"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]string{"error": "Registration failed"}, decodeBody(t, w))
	assert.Equal(t, 0, repo.Len())
}

func TestRegisterHandler_Register_EmptyBody(t *testing.T) {
	r := setupRouter(t, repository.NewMemoryUserRepository())

	w := postRegister(r, ``)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRegisterHandler_Register_InvalidJSON(t *testing.T) {
	r := setupRouter(t, repository.NewMemoryUserRepository())

	w := postRegister(r, `{"email":`)
	wrongType := postRegister(r, `{"email":42}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{"error": "Invalid request body"}, decodeBody(t, w))
	assert.Equal(t, http.StatusBadRequest, wrongType.Code)
}

func TestRegisterHandler_Register_StoreFailureHidesDetail(t *testing.T) {
	r := setupRouter(t, &brokenRepo{})

	w := postRegister(r, `{"email":"ann@x.com"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "lost connection")
	assert.Equal(t, map[string]string{"error": "Registration failed"}, decodeBody(t, w))
}

func TestRegisterHandler_Register_ConcurrentSameEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	r := setupRouter(t, repo)
	const n = 25

	codes := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- postRegister(r, `{"email":"race@x.com"}`).Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	assert.Equal(t, 1, counts[http.StatusCreated])
	assert.Equal(t, n-1, counts[http.StatusBadRequest])
	assert.Equal(t, 1, repo.Len())
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempoaovivo/account-service/internal/command"
	"github.com/tempoaovivo/account-service/internal/query"
	"github.com/tempoaovivo/account-service/internal/repository"
	"github.com/tempoaovivo/account-service/shared/middleware"
)

func newAppRouter(t *testing.T, requireAuth bool) (http.Handler, *middleware.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Open(context.Background(), repository.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := quietLogger()
	tokens, err := middleware.NewTokenManager("integration-secret", time.Hour)
	require.NoError(t, err)

	repo := repository.NewUserRepository(db)
	var guard gin.HandlerFunc
	if requireAuth {
		guard = middleware.AuthMiddleware(tokens)
	}

	r := gin.New()
	RegisterRoutes(r,
		NewHealthHandler(repo, log),
		NewAuthHandler(query.NewAuthQueryService(repo, tokens, log), log),
		NewUserHandler(command.NewUserCommandService(repo, nil, log), query.NewUserQueryService(repo), log),
		guard,
	)
	return middleware.CORS([]string{"*"})(r), tokens
}

func registerAndLogin(t *testing.T, r http.Handler, email string) (int64, string) {
	t.Helper()
	body := validRegisterBody()
	body["email"] = email

	w := doRequest(r, http.MethodPost, "/register", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = doRequest(r, http.MethodPost, "/login", map[string]string{"email": email, "password": body["password"]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, reg.UserID, login.User.ID)
	return reg.UserID, login.Token
}

func TestAccountFlow(t *testing.T) {
	r, tokens := newAppRouter(t, false)

	id, token := registerAndLogin(t, r, "fluxo@example.com")

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)

	w := doRequest(r, http.MethodPost, "/register", validRegisterBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(r, http.MethodPost, "/register", validRegisterBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/user/%d", id), validUpdateBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/user/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	var view map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Maria Lima", view["name"])
	assert.Equal(t, "fluxo@example.com", view["email"])

	w = doRequest(r, http.MethodPost, "/login", map[string]string{"email": "fluxo@example.com", "password": "segredo123"})
	assert.Equal(t, http.StatusOK, w.Code, "password must survive a profile update")

	w = doRequest(r, http.MethodPost, "/login", map[string]string{"email": "fluxo@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrongBody := w.Body.String()
	w = doRequest(r, http.MethodPost, "/login", map[string]string{"email": "nobody@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, wrongBody, w.Body.String())

	w = doRequest(r, http.MethodGet, "/user/424242", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPut, "/user/424242", validUpdateBody())
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountFlow_LongPasswords(t *testing.T) {
	r, _ := newAppRouter(t, false)

	passwords := map[string]string{
		"ascii":     strings.Repeat("x", 80),
		"multibyte": strings.Repeat("ção", 20),
	}
	for name, password := range passwords {
		t.Run(name, func(t *testing.T) {
			body := validRegisterBody()
			body["email"] = name + "@example.com"
			body["password"] = password

			w := doRequest(r, http.MethodPost, "/register", body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			w = doRequest(r, http.MethodPost, "/login", map[string]string{"email": body["email"], "password": password})
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestAccountFlow_LoginEmptyFields(t *testing.T) {
	r, _ := newAppRouter(t, false)
	registerAndLogin(t, r, "vazio@example.com")

	w := doRequest(r, http.MethodPost, "/login", map[string]string{"email": "", "password": "segredo123"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertJSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())

	w = doRequest(r, http.MethodPost, "/login", map[string]string{"email": "vazio@example.com", "password": ""})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assertJSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())
}

func TestAccountFlow_RegisterValidation(t *testing.T) {
	r, _ := newAppRouter(t, false)

	cases := map[string]string{"password": "1234567", "phone": "123", "zip": "123"}
	for field, value := range cases {
		t.Run(field, func(t *testing.T) {
			body := validRegisterBody()
			body["email"] = field + "@example.com"
			body[field] = value

			w := doRequest(r, http.MethodPost, "/register", body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp middleware.BadRequestErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Len(t, resp.Details, 1)
			assert.Equal(t, field, resp.Details[0].Field)
		})
	}
}

func TestAccountFlow_RequireAuth(t *testing.T) {
	r, _ := newAppRouter(t, true)

	id, token := registerAndLogin(t, r, "auth@example.com")
	otherID, _ := registerAndLogin(t, r, "other@example.com")

	w := doRequest(r, http.MethodGet, fmt.Sprintf("/user/%d", id), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	get := func(target int64) int {
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/user/%d", target), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return doRecorded(r, req)
	}
	assert.Equal(t, http.StatusOK, get(id))
	assert.Equal(t, http.StatusForbidden, get(otherID))
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newAppRouter(t, false)

	req, _ := http.NewRequest(http.MethodOptions, "/register", strings.NewReader(""))
	req.Header.Set("Origin", "http://localhost:8100")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := recorder(r, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required,br_phone"`
	Zip      string `json:"zip" validate:"required,br_zip"`
	NoTag    string `validate:"required"`
}

func fieldsOf(errs []ValidationError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Type
	}
	return out
}

func TestValidateRequest_OK(t *testing.T) {
	errs := ValidateRequest(signupForm{
		Name: "Alice", Password: "12345678", Phone: "(11) 98888-7777", Zip: "01001-000",
		NoTag: "y",
	})
	assert.Nil(t, errs)
}

func TestValidateRequest_FieldErrors(t *testing.T) {
	errs := ValidateRequest(signupForm{Password: "1234567", Phone: "123", Zip: "123"})

	assert.Equal(t, map[string]string{
		"name":     "required",
		"password": "min",
		"phone":    "br_phone",
		"zip":      "br_zip",
		"notag":    "required",
	}, fieldsOf(errs))

	for _, e := range errs {
		assert.NotEmpty(t, e.Message)
	}
}

func TestValidateRequest_Messages(t *testing.T) {
	errs := ValidateRequest(signupForm{
		Name: "A", Password: "short", Phone: "1", Zip: "1", NoTag: "y",
	})
	msgs := map[string]string{}
	for _, e := range errs {
		msgs[e.Field] = e.Message
	}
	assert.Equal(t, "Must be at least 8 characters long", msgs["password"])
	assert.Equal(t, "Phone must have 10 or 11 digits, area code included", msgs["phone"])
	assert.Equal(t, "Zip code must have 8 digits", msgs["zip"])
}

func TestValidateRequest_NotAStruct(t *testing.T) {
	errs := ValidateRequest("just a string")
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid", errs[0].Type)
}

func TestRespondHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondWithError(c, http.StatusNotFound, "User not found")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondWithValidationError(c, []ValidationError{{Field: "zip", Message: "Zip code must have 8 digits", Type: "br_zip"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body BadRequestErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request data", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "zip", body.Details[0].Field)
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(LoggingMiddleware(log))
	r.GET("/user/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/9", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/user/:id", line["path"])
	assert.EqualValues(t, 404, line["status"])
}

func TestLoggingMiddleware_UnmatchedRouteUsesRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(LoggingMiddleware(log))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/nowhere", line["path"])
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	h := CORS([]string{"http://localhost:8100"})(r)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:8100")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:8100", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

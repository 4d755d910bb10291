package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelopeBody struct {
	Error struct {
		Message    string   `json:"message"`
		Code       string   `json:"code"`
		StatusCode int      `json:"statusCode"`
		Details    []string `json:"details"`
		Timestamp  string   `json:"timestamp"`
		Path       string   `json:"path"`
		Method     string   `json:"method"`
		Stack      string   `json:"stack"`
	} `json:"error"`
}

func render(t *testing.T, env string, err error) (*httptest.ResponseRecorder, envelopeBody) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(env)(err, c)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRender_TypedError(t *testing.T) {
	t.Parallel()

	rec, body := render(t, "prod", Validation([]string{"name is required", "price must be greater than 0"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, body.Error.Code)
	assert.Equal(t, http.StatusBadRequest, body.Error.StatusCode)
	assert.Len(t, body.Error.Details, 2)
	assert.Equal(t, "/api/products", body.Error.Path)
	assert.Equal(t, http.MethodPost, body.Error.Method)
	assert.NotEmpty(t, body.Error.Timestamp)
}

func TestRender_UnexpectedErrorDefaultsToInternal(t *testing.T) {
	t.Parallel()

	rec, body := render(t, "prod", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeInternal, body.Error.Code)
	// Raw cause text never reaches the client.
	assert.NotContains(t, body.Error.Message, "connection refused")
	assert.Empty(t, body.Error.Stack, "no stack traces in production")
}

func TestRender_StackOnlyOutsideProduction(t *testing.T) {
	t.Parallel()

	_, body := render(t, "dev", errors.New("boom"))
	assert.NotEmpty(t, body.Error.Stack)
}

func TestRender_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler("prod")
	req := httptest.NewRequest(http.MethodGet, "/api/nowhere", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeRouteNotFound, body.Error.Code)
}

func TestInternal_WrapsCauseForLogsOnly(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := Internal("PRODUCTS_FETCH_ERROR", "failed to fetch products", cause)

	assert.True(t, errors.Is(err, cause))
	_, body := render(t, "prod", error(err))
	assert.Equal(t, "failed to fetch products", body.Error.Message)
	assert.Equal(t, "PRODUCTS_FETCH_ERROR", body.Error.Code)
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
)

func recordError(t *testing.T, err error) (*httptest.ResponseRecorder, domain.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	httpErrorHandler(err, c)

	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandler_CodedError(t *testing.T) {
	rec, body := recordError(t, constants.ErrScopeMismatch)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, constants.ErrScopeMismatch.Error(), body.Message)
}

func TestHTTPErrorHandler_WrappedCodedError(t *testing.T) {
	err := fmt.Errorf("resolve municipality: %w", constants.ErrDBNotFound)
	rec, body := recordError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "resolve municipality: not found", body.Message)
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, _ := recordError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, body := recordError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusInternalServerError, body.Code)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, errorStatus(constants.ErrScopeMismatch))
	assert.Equal(t, http.StatusNotFound, errorStatus(fmt.Errorf("resolve: %w", constants.ErrDBNotFound)))
	assert.Equal(t, http.StatusServiceUnavailable, errorStatus(fmt.Errorf("store: %w", constants.ErrDataUnavailable)))
	assert.Equal(t, http.StatusTeapot, errorStatus(echo.NewHTTPError(http.StatusTeapot)))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(assert.AnError))
}

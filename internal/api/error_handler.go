package api

import (
	"errors"
	"net/http"

	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"

	"github.com/labstack/echo/v4"
)

// errorStatus unwraps down to the first CodedError or echo.HTTPError and
// returns its status; anything else is a 500.
func errorStatus(err error) int {
	for ; err != nil; err = errors.Unwrap(err) {
		if ce, ok := err.(*constants.CodedError); ok {
			return ce.Code()
		}
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code
		}
	}
	return http.StatusInternalServerError
}

func httpErrorHandler(err error, c echo.Context) {
	code := errorStatus(err)

	_ = c.JSON(code, domain.ErrorResponse{
		Message: err.Error(),
		Code:    code,
	})
}

package api

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"github.com/tmabaso/sdg3health/internal/pkg/metrics"
	"github.com/tmabaso/sdg3health/internal/pkg/utils"
)

// RequestIDMiddleware tags every request with an id the ctx logger picks up.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqID := uuid.NewString()
		ctx.Set(constants.CtxKeyRequestID, reqID)
		ctx.Response().Header().Set(echo.HeaderXRequestID, reqID)

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(
			context.WithValue(req.Context(), constants.CtxKeyRequestID, reqID), //nolint:staticcheck
		))

		return next(ctx)
	}
}

func (svc *APIService) MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		route := ctx.Path()
		status := ctx.Response().Status
		if err != nil {
			// the global error handler has not written the response yet
			status = errorStatus(err)
		}
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.RequestDurationMs.WithLabelValues(route).
			Observe(float64(time.Since(start).Milliseconds()))

		return err
	}
}

// AdminMiddleware guards mutating endpoints with the signed secret cookie.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrMissingAuthCookie
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

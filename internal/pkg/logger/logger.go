// Package logger wraps a process-wide zap logger behind ctx-aware helpers,
// so call sites don't thread a logger through every constructor.
package logger

import (
	"context"

	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"go.uber.org/zap"
)

var global = zap.Must(zap.NewProduction()).Sugar()

// Init replaces the default production logger. debug switches to the
// development config with human-readable output.
func Init(debug bool) {
	if debug {
		global = zap.Must(zap.NewDevelopment()).Sugar()
		return
	}
	global = zap.Must(zap.NewProduction()).Sugar()
}

func Sync() {
	_ = global.Sync()
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return global
	}
	if reqID, ok := ctx.Value(constants.CtxKeyRequestID).(string); ok && reqID != "" {
		return global.With("request_id", reqID)
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Info(args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Error(args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Fatal(args...)
}

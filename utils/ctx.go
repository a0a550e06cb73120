package utils

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const (
	loggerKey ctxKey = "TS_LOGGER"
	logIDKey  ctxKey = "TS_LOG_ID"
	fieldsKey ctxKey = "TS_LOG_FIELDS"
)

// NewCtx 返回一个已放入logger和log id的ctx，用来传递给CtxInfo等函数
func NewCtx(logger *logrus.Logger, logID uint16) context.Context {
	return WithLogger(context.Background(), logger, logID)
}

// WithLogger 在parent内放入logger和log id，logger为nil时使用logrus.StandardLogger
func WithLogger(parent context.Context, logger *logrus.Logger, logID uint16) context.Context {
	ctx := parent
	if logger != nil {
		ctx = context.WithValue(ctx, loggerKey, logger)
	}
	return context.WithValue(ctx, logIDKey, logID)
}

// WithFields 在ctx内追加用于打印日志的fields，同名字段会被覆盖
func WithFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	if val, ok := ctx.Value(fieldsKey).(logrus.Fields); ok {
		for k, v := range val {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey, merged)
}

// LogID 返回ctx内的log id
func LogID(ctx context.Context) uint16 {
	if val, ok := ctx.Value(logIDKey).(uint16); ok {
		return val
	}
	return 0
}

package utils

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// NewLogger 创建输出到out的logger，level为空时使用warn
func NewLogger(out io.Writer, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	if level == "" {
		level = logrus.WarnLevel.String()
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}

func ctxLog(ctx context.Context, level logrus.Level, format string, args ...interface{}) {
	logger := logrus.StandardLogger() // 从context内读取logger
	if val, ok := ctx.Value(loggerKey).(*logrus.Logger); ok {
		logger = val
	}
	if !logger.IsLevelEnabled(level) {
		return
	}
	entry := logrus.NewEntry(logger) // 从context内读取fields
	if val, ok := ctx.Value(fieldsKey).(logrus.Fields); ok {
		entry = logger.WithFields(val)
	}
	location := "???.go:0" // 获取调用方位置
	if _, file, line, ok := runtime.Caller(2); ok {
		location = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	// 统一输出格式
	format = fmt.Sprintf("[0x%04x] [%s] %s", LogID(ctx), location, format)
	entry.Logf(level, format, args...)
}

// CtxDebug logger.Debugf的封装，logger从context中获取
func CtxDebug(ctx context.Context, format string, args ...interface{}) {
	ctxLog(ctx, logrus.DebugLevel, format, args...)
}

// CtxInfo logger.Infof的封装，logger从context中获取
func CtxInfo(ctx context.Context, format string, args ...interface{}) {
	ctxLog(ctx, logrus.InfoLevel, format, args...)
}

// CtxWarn logger.Warnf的封装，logger从context中获取
func CtxWarn(ctx context.Context, format string, args ...interface{}) {
	ctxLog(ctx, logrus.WarnLevel, format, args...)
}

// CtxError logger.Errorf的封装，logger从context中获取
func CtxError(ctx context.Context, format string, args ...interface{}) {
	ctxLog(ctx, logrus.ErrorLevel, format, args...)
}

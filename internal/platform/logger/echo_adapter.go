package logger

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

var _ echo.Logger = (*EchoLogger)(nil)

// EchoLogger routes echo's own logging through zap so the server's
// startup and internal messages share the structured output.
type EchoLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	prefix string
}

func NewEchoLogger(logger *zap.Logger) *EchoLogger {
	return &EchoLogger{logger: logger, sugar: logger.Sugar()}
}

func (l *EchoLogger) Output() io.Writer { return zapWriter{l.logger} }

func (l *EchoLogger) SetOutput(io.Writer) {}

func (l *EchoLogger) Level() log.Lvl {
	switch l.logger.Level() {
	case zap.DebugLevel:
		return log.DEBUG
	case zap.InfoLevel:
		return log.INFO
	case zap.WarnLevel:
		return log.WARN
	case zap.ErrorLevel:
		return log.ERROR
	}
	return log.OFF
}

func (l *EchoLogger) SetLevel(log.Lvl) {}

func (l *EchoLogger) SetHeader(string) {}

func (l *EchoLogger) Prefix() string { return l.prefix }

func (l *EchoLogger) SetPrefix(p string) { l.prefix = p }

func (l *EchoLogger) Print(i ...interface{})                 { l.sugar.Info(i...) }
func (l *EchoLogger) Printf(format string, i ...interface{}) { l.sugar.Infof(format, i...) }
func (l *EchoLogger) Printj(j log.JSON)                      { l.logger.Info("echo", zap.Any("json", j)) }
func (l *EchoLogger) Debug(i ...interface{})                 { l.sugar.Debug(i...) }
func (l *EchoLogger) Debugf(format string, i ...interface{}) { l.sugar.Debugf(format, i...) }
func (l *EchoLogger) Debugj(j log.JSON)                      { l.logger.Debug("echo", zap.Any("json", j)) }
func (l *EchoLogger) Info(i ...interface{})                  { l.sugar.Info(i...) }
func (l *EchoLogger) Infof(format string, i ...interface{})  { l.sugar.Infof(format, i...) }
func (l *EchoLogger) Infoj(j log.JSON)                       { l.logger.Info("echo", zap.Any("json", j)) }
func (l *EchoLogger) Warn(i ...interface{})                  { l.sugar.Warn(i...) }
func (l *EchoLogger) Warnf(format string, i ...interface{})  { l.sugar.Warnf(format, i...) }
func (l *EchoLogger) Warnj(j log.JSON)                       { l.logger.Warn("echo", zap.Any("json", j)) }
func (l *EchoLogger) Error(i ...interface{})                 { l.sugar.Error(i...) }
func (l *EchoLogger) Errorf(format string, i ...interface{}) { l.sugar.Errorf(format, i...) }
func (l *EchoLogger) Errorj(j log.JSON)                      { l.logger.Error("echo", zap.Any("json", j)) }
func (l *EchoLogger) Fatal(i ...interface{})                 { l.sugar.Fatal(i...) }
func (l *EchoLogger) Fatalf(format string, i ...interface{}) { l.sugar.Fatalf(format, i...) }
func (l *EchoLogger) Fatalj(j log.JSON)                      { l.logger.Fatal("echo", zap.Any("json", j)) }
func (l *EchoLogger) Panic(i ...interface{})                 { l.sugar.Panic(i...) }
func (l *EchoLogger) Panicf(format string, i ...interface{}) { l.sugar.Panicf(format, i...) }
func (l *EchoLogger) Panicj(j log.JSON)                      { l.logger.Panic("echo", zap.Any("json", j)) }

type zapWriter struct {
	logger *zap.Logger
}

func (w zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}

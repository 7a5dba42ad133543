// pkg/logger/noop.go
package logger

// noopLogger 丢弃所有日志
type noopLogger struct{}

// Noop 返回不输出任何内容的日志记录器
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

func (n noopLogger) Named(name string) Logger { return n }

func (n noopLogger) WithFields(keysAndValues ...interface{}) Logger { return n }

func (noopLogger) Sync() error { return nil }

package engine

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger. It is a no-op unless SetLogger was
// called before first use.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the package logger. Must be called before the first
// Logger call to take effect; engines created afterwards pick it up.
func SetLogger(l *zap.Logger) {
	logger = l
}

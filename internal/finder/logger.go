package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	maxLogSize      = 10 * 1024 * 1024 // 10MB
	maxLogRotations = 5
)

var (
	globalLogger *zap.SugaredLogger
	logLevel     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	loggerOnce   sync.Once
)

// getLogger returns the global logger, initializing it on first use.
func getLogger() *zap.SugaredLogger {
	loggerOnce.Do(initLogger)
	return globalLogger
}

// initLogger builds a zap logger writing to a rotated file under the OS
// temp dir. Any setup failure degrades to a no-op logger; the engine
// must keep working without its log file.
func initLogger() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", r)
			globalLogger = zap.NewNop().Sugar()
		}
	}()

	logDir := filepath.Join(os.TempDir(), "fastfinder-logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		globalLogger = zap.NewNop().Sugar()
		return
	}

	logPath := filepath.Join(logDir, "finder.log")
	rotateLogFile(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		globalLogger = zap.NewNop().Sugar()
		return
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(file)),
		logLevel,
	)
	globalLogger = zap.New(core).Sugar()
}

// rotateLogFile shifts old log files aside once the current one is too big.
func rotateLogFile(logPath string) {
	fi, err := os.Stat(logPath)
	if err != nil || fi.Size() <= maxLogSize {
		return
	}
	for i := maxLogRotations - 1; i > 0; i-- {
		oldPath := fmt.Sprintf("%s.%d", logPath, i)
		newPath := fmt.Sprintf("%s.%d", logPath, i+1)
		os.Rename(oldPath, newPath)
	}
	os.Rename(logPath, logPath+".1")
}

func logDebug(format string, args ...interface{}) {
	getLogger().Debugf(format, args...)
}

func logInfo(format string, args ...interface{}) {
	getLogger().Infof(format, args...)
}

func logWarn(format string, args ...interface{}) {
	getLogger().Warnf(format, args...)
}

func logError(format string, args ...interface{}) {
	getLogger().Errorf(format, args...)
}

// SetLogLevel changes the global log level at runtime ("debug", "info",
// "warn", "error"). Unknown values are ignored.
func SetLogLevel(level string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return
	}
	logLevel.SetLevel(l)
}

// CloseLogger flushes any buffered log entries.
func CloseLogger() {
	_ = getLogger().Sync()
}

package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func getLogger() *log.Logger {
	once.Do(func() {
		singleton = NewLogger(os.Stderr, "raytracer")
	})
	return singleton
}

// NewLogger builds a charm logger writing to w
func NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
		Level:           log.InfoLevel,
	})
}

// DefaultLogger returns the process-wide logger
func DefaultLogger() *log.Logger {
	return getLogger()
}

// SetLogLevel changes the level of the process-wide logger ("debug", "info", "warn", "error")
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	getLogger().SetLevel(lvl)
	return nil
}

func LogDebug(msg string, keyvals ...interface{}) {
	getLogger().Debug(msg, keyvals...)
}

func LogInfo(msg string, keyvals ...interface{}) {
	getLogger().Info(msg, keyvals...)
}

func LogWarn(msg string, keyvals ...interface{}) {
	getLogger().Warn(msg, keyvals...)
}

func LogError(msg string, keyvals ...interface{}) {
	getLogger().Error(msg, keyvals...)
}

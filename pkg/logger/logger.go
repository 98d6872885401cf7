// Package logger is a thin printf-style wrapper around logrus, matching
// the call shape used throughout the mediator (Info/Warn/Error/Debug with
// a format string and args, plus InitLog/FlushLog hooks for optional
// file logging, which neither binary currently calls).
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	log = newDefault()
	out io.WriteCloser
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// InitLog redirects logging to the given file path in addition to stderr.
// Safe to call once at process startup; a no-op path disables file logging.
func InitLog(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	out = f
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// FlushLog closes the log file opened by InitLog, if any.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		_ = out.Close()
		out = nil
	}
}

// SetLevel adjusts the minimum logged level ("debug", "info", "warn", "error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	log.SetLevel(lvl)
}

func Debug(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.Errorf(format, args...)
}

package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is a wrapper around the log.Logger from the charmbracelet/log package.
type Logger struct {
	*log.Logger
}

var (
	logger *Logger
	once   sync.Once
)

// CreateLogger sets up the process-wide logger. It must be called before using
// the package-level helpers; GetLogger calls it lazily.
func CreateLogger() {
	once.Do(func() {
		logger = newLogger(os.Stderr)
	})
}

func newLogger(w io.Writer) *Logger {
	baseLogger := log.New(w)

	// DEBUG=1 turns on caller/timestamp reporting and debug level.
	if os.Getenv("DEBUG") == "1" {
		baseLogger = log.NewWithOptions(w, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Prefix:          "maketest",
		})
		baseLogger.SetLevel(log.DebugLevel)
	} else {
		baseLogger.SetLevel(log.InfoLevel)
	}

	return &Logger{Logger: baseLogger}
}

// GetLogger returns the process-wide Logger instance.
func GetLogger() *Logger {
	if logger == nil {
		CreateLogger()
	}
	return logger
}

// NewTestLogger returns a logger that writes to the given writer at debug
// level. Tests pass a bytes.Buffer (or io.Discard) so assertions can inspect
// log output without touching stderr.
func NewTestLogger(w io.Writer) *Logger {
	baseLogger := log.New(w)
	baseLogger.SetLevel(log.DebugLevel)
	return &Logger{Logger: baseLogger}
}

// BaseLogger returns the underlying *log.Logger.
func (l *Logger) BaseLogger() *log.Logger {
	return l.Logger
}

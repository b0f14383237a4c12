package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/daybook/internal/constants"
)

var (
	// Logger is the global logger instance. Nil until Init or UseWriter is called,
	// in which case every helper below is a no-op.
	Logger *log.Logger

	rotator *lumberjack.Logger
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// ConfigDir is the directory holding the database; logs go to ConfigDir/logs.
	ConfigDir string
	// Level overrides the default level ("debug", "info", "warn", "error").
	Level string
}

// Init points the global logger at a rotating file under the config directory.
// Debug mode also tees output to stderr and reports callers.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	Close()
	rotator = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = rotator
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, rotator)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// UseWriter replaces the global logger with one writing plain logfmt to w at debug level.
func UseWriter(w io.Writer) {
	Close()
	Logger = log.NewWithOptions(w, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.LogfmtFormatter,
		Prefix:    constants.AppName,
	})
}

// Close flushes and releases the log file, if any.
func Close() {
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

// With returns a child logger carrying keyvals on every line, or nil when logging is off.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

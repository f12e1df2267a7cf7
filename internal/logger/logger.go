package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// Component names used as log fields and log file names.
const (
	ComponentApp     = "app"
	ComponentSource  = "source"
	ComponentService = "service"
	ComponentReports = "reports"
	ComponentQuotes  = "quotes"
	ComponentViews   = "views"
)

// Config controls where log output goes.
type Config struct {
	Level   string // zerolog level name, default "info"
	Dir     string // when set, each component also writes <Dir>/<component>.log
	Console bool   // human-readable output on stderr
	MaxSize int    // megabytes before a log file is rotated
}

// Factory builds component loggers that share one configuration.
type Factory struct {
	cfg     Config
	level   zerolog.Level
	console io.Writer
	files   map[string]*lumberjack.Logger
}

// NewFactory creates a Factory for cfg. An unknown level falls back to info.
func NewFactory(cfg Config) *Factory {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 10
	}
	var console io.Writer = os.Stderr
	if cfg.Console {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return &Factory{cfg: cfg, level: level, console: console, files: make(map[string]*lumberjack.Logger)}
}

// For returns a logger tagged with component.
func (f *Factory) For(component string) zerolog.Logger {
	w := f.console
	if f.cfg.Dir != "" {
		file, ok := f.files[component]
		if !ok {
			file = &lumberjack.Logger{
				Filename:   filepath.Join(f.cfg.Dir, component+".log"),
				MaxSize:    f.cfg.MaxSize,
				MaxBackups: 3,
			}
			f.files[component] = file
		}
		w = zerolog.MultiLevelWriter(f.console, file)
	}
	return NewWithWriter(w).Level(f.level).With().Str("component", component).Logger()
}

// Close flushes and closes the component log files.
func (f *Factory) Close() error {
	var first error
	for _, file := range f.files {
		if err := file.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New creates a console logger for use before a Factory exists
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewWithWriter creates a new structured logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a disabled logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

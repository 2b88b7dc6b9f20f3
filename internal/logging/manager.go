// pattern: Imperative Shell

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath     string    // JSON log file; empty disables file output
	MaxSizeMB    int       // rotate after this many megabytes
	MaxBackups   int       // rotated files to keep
	MaxAgeDays   int       // days to keep rotated files
	Level        string    // minimum file level (debug, info, warn, error)
	Console      io.Writer // human-readable output, usually os.Stderr under --verbose
	ConsoleLevel string    // minimum console level, defaults to Level
}

// LoggerProvider hands out scoped loggers. Manager and TestLogManager
// implement it.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger is a slog front end over a named zap logger. The zero value
// discards everything.
type ScopedLogger struct {
	slog  *slog.Logger
	zap   *zap.Logger
	scope string
}

func (l *ScopedLogger) log(level slog.Level, msg string, args []any) {
	if l == nil || l.slog == nil {
		return
	}
	l.slog.Log(context.Background(), level, msg, args...)
}

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }

// Info logs at INFO level.
func (l *ScopedLogger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args) }

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args) }

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

// With returns a logger that adds args to every entry.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l == nil || l.slog == nil {
		return l
	}
	return &ScopedLogger{slog: l.slog.With(args...), zap: l.zap, scope: l.scope}
}

// Scope returns the dotted component name the logger was created for.
func (l *ScopedLogger) Scope() string {
	if l == nil {
		return ""
	}
	return l.scope
}

// scopes caches one ScopedLogger per scope name over a shared zap core.
type scopes struct {
	base    *zap.Logger
	level   zapcore.Level
	mu      sync.Mutex
	loggers map[string]*ScopedLogger
}

func newScopes(base *zap.Logger, level zapcore.Level) *scopes {
	return &scopes{base: base, level: level, loggers: make(map[string]*ScopedLogger)}
}

func (s *scopes) get(scope string) *ScopedLogger {
	s.mu.Lock()
	defer s.mu.Unlock()

	if logger, ok := s.loggers[scope]; ok {
		return logger
	}
	named := s.base.Named(scope)
	logger := &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: named, level: s.level}),
		zap:   named,
		scope: scope,
	}
	s.loggers[scope] = logger
	return logger
}

// Manager writes every scope to a rotated JSON file and, optionally, a
// console.
type Manager struct {
	*scopes
	fileWriter *lumberjack.Logger
}

// NewManager builds the zap cores described by cfg.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" && cfg.Console == nil {
		return nil, errors.New("logging: FilePath or Console is required")
	}

	level := parseZapLevel(cfg.Level, zapcore.InfoLevel)
	var cores []zapcore.Core
	var fileWriter *lumberjack.Logger

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			MaxAge:     orDefault(cfg.MaxAgeDays, 7),
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(jsonEncoderConfig()),
			zapcore.AddSync(fileWriter),
			level,
		))
	}

	if cfg.Console != nil {
		consoleLevel := parseZapLevel(cfg.ConsoleLevel, level)
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig()),
			zapcore.AddSync(cfg.Console),
			consoleLevel,
		))
		level = min(level, consoleLevel)
	}

	return &Manager{
		scopes:     newScopes(zap.New(zapcore.NewTee(cores...)), level),
		fileWriter: fileWriter,
	}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// jsonEncoderConfig is shared by the file and memory sinks so ParseEntry can
// read both.
func jsonEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return encoderCfg
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	return encoderCfg
}

func parseZapLevel(text string, fallback zapcore.Level) zapcore.Level {
	if text == "" {
		return fallback
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(text)); err != nil {
		return fallback
	}
	return level
}

// For returns the cached logger for scope, e.g. "traverse" or "command.update".
func (m *Manager) For(scope string) *ScopedLogger {
	return m.get(scope)
}

// Sync flushes buffered entries.
func (m *Manager) Sync() error {
	return m.base.Sync()
}

// Close flushes and closes the log file.
func (m *Manager) Close() error {
	_ = m.Sync()
	if m.fileWriter == nil {
		return nil
	}
	return m.fileWriter.Close()
}

// zapSlogHandler routes slog records into a zap logger. Groups become
// dotted key prefixes.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.Level
	fields []zap.Field
	prefix string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return zapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	ce := h.zap.Check(zapLevel(r.Level), r.Message)
	if ce == nil {
		return nil
	}
	fields := make([]zap.Field, 0, len(h.fields)+r.NumAttrs())
	fields = append(fields, h.fields...)
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.field(attr))
		return true
	})
	ce.Write(fields...)
	return nil
}

func (h *zapSlogHandler) field(attr slog.Attr) zap.Field {
	value := attr.Value.Resolve().Any()
	if err, ok := value.(error); ok {
		return zap.String(h.prefix+attr.Key, err.Error())
	}
	return zap.Any(h.prefix+attr.Key, value)
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = make([]zap.Field, 0, len(h.fields)+len(attrs))
	next.fields = append(next.fields, h.fields...)
	for _, attr := range attrs {
		next.fields = append(next.fields, h.field(attr))
	}
	return &next
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

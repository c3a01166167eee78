// Package gorm implements a gorm logger writing through zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pas-services/pas-profile/internal/logger"
)

// Logger implements gorm's logger.Interface.
type Logger struct {
	zl                   zerolog.Logger
	level                gormlogger.LogLevel
	slowThreshold        time.Duration
	ignoreRecordNotFound bool
}

var _ gormlogger.Interface = (*Logger)(nil)

// ParseLevel maps the configured level name to a gorm log level.
func ParseLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// New creates a gorm logger from the log config.
// Statements go to the SQL file if file logging is enabled, otherwise to the global logger.
func New(cfg logger.Log) *Logger {
	zl := log.Logger

	if cfg.File.Enabled && cfg.File.SQLLog != "" {
		var w io.Writer = os.Stderr

		if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil { //nolint: mnd
			log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create log directory")
		} else {
			w = logger.NewRotatingFile(cfg.File, cfg.File.SQLLog, cfg.File.SQLMaxSize, cfg.File.SQLMaxAge, cfg.File.SQLMaxBackups)
		}

		zl = zerolog.New(w).With().Timestamp().Logger()
	}

	return NewWithLogger(zl.With().Str("component", "gorm").Logger(), cfg.SQL)
}

// NewWithLogger creates a gorm logger writing to zl.
func NewWithLogger(zl zerolog.Logger, cfg logger.SQL) *Logger {
	return &Logger{
		zl:                   zl,
		level:                ParseLevel(cfg.LogLevel),
		slowThreshold:        time.Duration(cfg.SlowThreshold) * time.Millisecond,
		ignoreRecordNotFound: cfg.IgnoreRecordNotFound,
	}
}

// LogMode returns a copy of the logger using level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	nl := *l
	nl.level = level

	return &nl
}

// Info logs gorm info messages.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.zl.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

// Warn logs gorm warnings.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.zl.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

// Error logs gorm errors.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.zl.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace logs one executed statement: failures as errors, slow statements as warnings
// and everything else at debug level if the logger is in info mode.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error &&
		(!l.ignoreRecordNotFound || !errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		l.zl.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("statement failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.zl.Warn().Dur("elapsed", elapsed).Dur("threshold", l.slowThreshold).Int64("rows", rows).Str("sql", sql).
			Msg("slow statement")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.zl.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("statement")
	}
}

// Package logger configures zerolog for the API and the seed command.
//
// Outside development every line is JSON and carries the service name and environment,
// so lines from cmd/api and cmd/seed can be told apart in one log stream.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config logger options.
type Config struct {
	Service string // "service" field on every line; empty leaves it out
	Env     string // development: colored console with caller; otherwise JSON
	Level   string // any zerolog level name; unknown or empty means info
}

// Logger is the process logger. The embedded zerolog.Logger provides Info, Error, With and friends.
type Logger struct {
	zerolog.Logger
}

// New builds the process logger on stdout and makes it the global zerolog logger,
// so packages logging through zerolog/log share its level and fields.
func New(cfg Config) *Logger {
	l := NewWithWriter(cfg, os.Stdout)
	log.Logger = l.Logger
	return l
}

// NewWithWriter builds a logger on w without touching the global logger.
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	dev := strings.EqualFold(cfg.Env, "development")
	if dev {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	if cfg.Env != "" && !dev {
		ctx = ctx.Str("env", cfg.Env)
	}
	if dev {
		ctx = ctx.Caller()
	}
	return &Logger{Logger: ctx.Logger()}
}

// ParseLevel maps a configured level name onto zerolog, falling back to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component returns a child logger tagged with the subsystem name, e.g. "http" or "seed".
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

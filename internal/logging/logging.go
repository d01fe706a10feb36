// Package logging builds the application's logrus logger. Console output
// goes to stderr; an optional log file is rotated with lumberjack.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Level  string // debug, info, warn, error (default info)
	Format string // "text" or "json" (default text)
	File   string // optional path; enables rotated file output
}

// Output format names.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a configured logger and a closer for its log file. The
// closer is a no-op when no file is configured. An unrecognised level falls
// back to info.
func New(opts Options) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(opts.Level))

	if strings.EqualFold(strings.TrimSpace(opts.Format), FormatJSON) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var closer io.Closer = nopCloser{}
	var out io.Writer = os.Stderr
	if file := strings.TrimSpace(opts.File); file != "" {
		rotated := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		out = io.MultiWriter(os.Stderr, rotated)
		closer = rotated
	}
	logger.SetOutput(out)

	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops everything. Used by tests and by
// callers that have no logger to pass.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// ParseLevel converts a level name to a logrus level.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// WithComponent returns an entry with the component field set.
func WithComponent(l logrus.FieldLogger, name string) *logrus.Entry {
	return l.WithField("component", name)
}

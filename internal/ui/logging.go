package ui

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/xkcdget/internal/comics"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogOptions struct {
	Debug bool
	// Out defaults to stderr.
	Out io.Writer
	// Path, when set, also writes JSON lines to a rotated file.
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

type Logger struct {
	Debug bool
	zl    zerolog.Logger
	file  *lumberjack.Logger
}

func NewLogger(debug bool) *Logger {
	return NewLoggerWith(LogOptions{Debug: debug})
}

func NewLoggerWith(opts LogOptions) *Logger {
	out, noColor := opts.Out, true
	if out == nil {
		out, noColor = os.Stderr, false
	}

	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: noColor}
	l := &Logger{Debug: opts.Debug}

	var w io.Writer = console
	if opts.Path != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		w = zerolog.MultiLevelWriter(console, l.file)
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	l.zl = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return l
}

// Nop discards everything; handy in tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}

	return nil
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(trim(format), args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(trim(format), args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(trim(format), args...)
}

// Outcome logs one terminal comic result. Failures go out at error level
// with the identifier and cause attached.
func (l *Logger) Outcome(o comics.Outcome) {
	if o.OK() {
		l.zl.Info().
			Int("comic", o.ID).
			Str("path", o.Path).
			Int64("bytes", o.Bytes).
			Msg("saved")
		return
	}

	l.zl.Error().
		Int("comic", o.ID).
		Str("status", o.Status.String()).
		Err(o.Err).
		Msg(failureMessage(o.Status))
}

func failureMessage(s comics.Status) string {
	switch s {
	case comics.StatusNotFound:
		return "comic image could not be found"
	case comics.StatusWriteFailure:
		return "could not save comic to file"
	default:
		return "unable to access comic"
	}
}

func trim(format string) string {
	return strings.TrimRight(format, "\n")
}

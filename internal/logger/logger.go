// Package logger provides leveled console logging for the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used across the CLI.
type Logger interface {
	Info(message string, fields ...Field)
	Warn(message string, fields ...Field)
	Error(message string, fields ...Field)
	Debug(message string, fields ...Field)
	Success(message string, fields ...Field)
	WithLibrary(name string) Logger
}

// Field is a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// WithField creates a new field.
func WithField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// successKey marks entries logged through Success.
const successKey = "_success"

// libraryKey carries the library an entry refers to.
const libraryKey = "library"

type consoleLogger struct {
	logger  *logrus.Logger
	library string
}

// Formatter renders entries as "LEVEL [library] message {k=v}".
type Formatter struct {
	DisableColors bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		data[k] = v
	}

	var levelColor *color.Color
	var levelText string

	switch entry.Level {
	case logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
		levelText = "ERROR"
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
		levelText = "WARN"
	case logrus.DebugLevel, logrus.TraceLevel:
		levelColor = color.New(color.FgWhite, color.Faint)
		levelText = "DEBUG"
	default:
		levelColor = color.New(color.FgCyan)
		levelText = "INFO"
	}
	if _, ok := data[successKey]; ok {
		levelColor = color.New(color.FgGreen)
		levelText = "OK"
		delete(data, successKey)
	}

	prefix := ""
	if lib, ok := data[libraryKey]; ok {
		prefix = fmt.Sprintf("[%v] ", lib)
		if !f.DisableColors {
			prefix = fmt.Sprintf("[%s] ", color.New(color.FgBlue).Sprint(lib))
		}
		delete(data, libraryKey)
	}

	level := levelText
	if !f.DisableColors {
		level = levelColor.Sprint(levelText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s%s", level, prefix, entry.Message)

	if len(data) > 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, data[k]))
		}
		fields := " {" + strings.Join(pairs, ", ") + "}"
		if !f.DisableColors {
			fields = color.New(color.FgWhite, color.Faint).Sprint(fields)
		}
		b.WriteString(fields)
	}
	b.WriteByte('\n')

	return []byte(b.String()), nil
}

// New creates a logger writing to stderr at the given level.
// Unknown levels fall back to info.
func New(level string) Logger {
	return newLogger(level, os.Stderr, color.NoColor)
}

// NewWithOutput creates an uncolored logger writing to w, for tests.
func NewWithOutput(level string, w io.Writer) Logger {
	return newLogger(level, w, true)
}

func newLogger(level string, w io.Writer, noColor bool) Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&Formatter{DisableColors: noColor})
	log.SetOutput(w)

	return &consoleLogger{logger: log}
}

// WithLibrary returns a logger that tags entries with a library name.
func (l *consoleLogger) WithLibrary(name string) Logger {
	return &consoleLogger{logger: l.logger, library: name}
}

func (l *consoleLogger) entry(fields []Field) *logrus.Entry {
	data := make(logrus.Fields, len(fields)+1)
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	if l.library != "" {
		data[libraryKey] = l.library
	}
	return l.logger.WithFields(data)
}

func (l *consoleLogger) Info(message string, fields ...Field) {
	l.entry(fields).Info(message)
}

func (l *consoleLogger) Warn(message string, fields ...Field) {
	l.entry(fields).Warn(message)
}

func (l *consoleLogger) Error(message string, fields ...Field) {
	l.entry(fields).Error(message)
}

func (l *consoleLogger) Debug(message string, fields ...Field) {
	l.entry(fields).Debug(message)
}

func (l *consoleLogger) Success(message string, fields ...Field) {
	l.entry(append(fields, WithField(successKey, true))).Info(message)
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return NewWithOutput("panic", io.Discard)
}

package logging

import (
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
	"sync/atomic"
)

// ANSI colours for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// DefaultLogger writes debug and info messages to one writer and warnings
// and errors to another, one line per message with fields sorted by key.
type DefaultLogger struct {
	out       *log.Logger
	errOut    *log.Logger
	level     *atomic.Int64
	fields    Fields
	useColors bool
}

// NewDefaultLogger logs to stdout and stderr at InfoLevel, with colours
// when stderr is a terminal.
func NewDefaultLogger() *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, isTerminal(os.Stderr))
}

// NewWriterLogger logs debug/info to out and warn/error to errOut.
func NewWriterLogger(out, errOut io.Writer, colors bool) *DefaultLogger {
	lvl := &atomic.Int64{}
	lvl.Store(int64(InfoLevel))

	return &DefaultLogger{
		out:       log.New(out, "", log.LstdFlags),
		errOut:    log.New(errOut, "", log.LstdFlags),
		level:     lvl,
		fields:    Fields{},
		useColors: colors,
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

func (d *DefaultLogger) format(level Level, err error, msg string, fields []Fields) string {
	all := maps.Clone(d.fields)
	for _, f := range fields {
		maps.Copy(all, f)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", level, msg)

	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}

	for _, k := range slices.Sorted(maps.Keys(all)) {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}

	line := b.String()

	if d.useColors {
		switch level {
		case WarnLevel:
			line = colorYellow + line + colorReset
		case ErrorLevel:
			line = colorRed + line + colorReset
		}
	}

	return line
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields []Fields) {
	if int64(level) < d.level.Load() {
		return
	}

	line := d.format(level, err, msg, fields)

	if level >= WarnLevel {
		d.errOut.Println(line)
		return
	}

	d.out.Println(line)
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields)
}

// WithFields returns a child logger sharing the writers and level.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := maps.Clone(d.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		out:       d.out,
		errOut:    d.errOut,
		level:     d.level,
		fields:    merged,
		useColors: d.useColors,
	}
}

// SetLevel sets the minimum level for this logger and its children.
func (d *DefaultLogger) SetLevel(level Level) {
	d.level.Store(int64(level))
}

// Package logger provides leveled logging for the board API on top of go-logging.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	module     = "board-api"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = newLogger(os.Stderr, logging.INFO)

func newLogger(w io.Writer, level logging.Level) *logging.Logger {
	l := logging.MustGetLogger(module)
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend,
		logging.MustStringFormatter(`%{time:`+timeFormat+`} %{level:.4s} %{shortfile} - %{message}`))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, module)
	l.SetBackend(leveled)
	l.ExtraCalldepth = 1
	return l
}

// InitLogger reconfigures the package logger. An unknown level name falls back to INFO.
func InitLogger(level string) {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	logger = newLogger(os.Stderr, lvl)
}

// SetOutput redirects all log output, mostly so tests can silence it.
func SetOutput(w io.Writer) {
	logger = newLogger(w, logging.DEBUG)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Writer returns an io.Writer that logs every write as one INFO entry.
func Writer() io.Writer {
	return infoWriter{}
}

type infoWriter struct{}

func (infoWriter) Write(p []byte) (int, error) {
	logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

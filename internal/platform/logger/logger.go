package logger

import (
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// New returns a JSON logger at the given level. Unknown levels fall back to info.
func New(level string) *log.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput is New writing to out; stdio frontends log to stderr.
func NewWithOutput(level string, out io.Writer) *log.Logger {
	l := log.New()
	l.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	l.SetOutput(out)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard is a logger that drops everything; handy when a caller passes nil.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

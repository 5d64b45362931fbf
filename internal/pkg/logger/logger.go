// Package logger adapts logrus to the ports.Logger interface.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a logrus instance.
type Logger struct {
	log *logrus.Logger
}

// New builds a logger writing to stderr; verbose enables debug level.
func New(verbose bool) *Logger {
	return newWithOutput(verbose, os.Stderr)
}

// NewWithFile additionally tees entries into a rotated log file.
func NewWithFile(verbose bool, path string) *Logger {
	if path == "" {
		return New(verbose)
	}
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return newWithOutput(verbose, io.MultiWriter(os.Stderr, rotated))
}

func newWithOutput(verbose bool, out io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return &Logger{log: log}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).WithError(err).Error(msg)
}

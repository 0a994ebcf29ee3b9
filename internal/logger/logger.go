// Package logger provides the structured logger used across the cascade
// resolver's components.
package logger

import (
	"github.com/sirupsen/logrus"
)

// log is the logger used by the cascade resolver and its subpackages.
var log = logrus.New()

// SetLevel sets the level of the logger to either debug or info based on the
// debug boolean flag passed to it.
func SetLevel(debug bool) {
	if debug {
		log.Level = logrus.DebugLevel
	} else {
		log.Level = logrus.InfoLevel
	}
}

// Fields is an alias for logrus.Fields so callers do not need to import
// logrus directly.
type Fields = logrus.Fields

// WithFields is a wrapper around log.WithFields.
func WithFields(fields Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// WithField is a wrapper around log.WithField.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// Error is a wrapper around log.Error.
func Error(args ...interface{}) {
	log.Error(args...)
}

// Errorf is a wrapper around log.Errorf.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Warn is a wrapper around log.Warn.
func Warn(args ...interface{}) {
	log.Warn(args...)
}

// Warnf is a wrapper around log.Warnf.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Info is a wrapper around log.Info.
func Info(args ...interface{}) {
	log.Info(args...)
}

// Infof is a wrapper around log.Infof.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Debug is a wrapper around log.Debug.
func Debug(args ...interface{}) {
	log.Debug(args...)
}

// Debugf is a wrapper around log.Debugf.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

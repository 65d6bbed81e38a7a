// Package logging builds the process-wide logger.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a configured logger. verbose forces debug level regardless of
// the configured level string.
func New(level string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

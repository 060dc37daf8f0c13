package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger builds the service logger. Level comes from LOG_LEVEL; anything
// unparseable falls back to info.
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}

package infrastructures

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. The package-level logrus logger gets
// the same settings so code logging through logrus directly stays consistent.
func NewLogger(config *AppConfig) *logrus.Logger {
	level, err := logrus.ParseLevel(config.LOG_LEVEL)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(level)

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(level)

	return logger
}

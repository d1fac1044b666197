package config

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggerOnce sync.Once
	logger     *logrus.Logger
)

// InitLogger returns the process-wide logger. Every caller gets the same
// instance, so packages that need logging before main wires things up share
// the logger main passes around.
func InitLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
		})
	})
	return logger
}

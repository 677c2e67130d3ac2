// Package log builds the logrus entry shared by every ghadrift command.
package log

import (
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

// New returns a logrus entry writing to stderr with the program metadata attached.
func New(version string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger.WithFields(logrus.Fields{
		"version": version,
		"program": "ghadrift",
		"env":     runtime.GOOS + "/" + runtime.GOARCH,
	})
}

// SetLevel sets the log level. An empty level keeps the current one.
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logE.WithField("log_level", level).WithError(err).Error("the log level is invalid")
		return
	}
	logE.Logger.Level = lvl
}

// EnableDebug lowers the level to debug unless a more verbose level is already set.
func EnableDebug(logE *logrus.Entry) {
	if logE.Logger.Level < logrus.DebugLevel {
		logE.Logger.Level = logrus.DebugLevel
	}
}

package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Configure sets up the standard logrus logger from config values.
// Unknown levels fall back to info.
func Configure(level, format string) {
	logrus.SetOutput(os.Stdout)

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// For returns a logger tagged with a component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

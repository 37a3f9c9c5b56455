// Package logger provides the process-wide logrus instance.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. Usable with defaults before Init is called.
var Log = logrus.New()

// Init configures the global logger from the environment. Call once at
// startup.
//
// LOG_LEVEL: trace/debug/info/warn/error (default "info").
// LOG_FORMAT: "json" for structured output, anything else for text.
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stderr)
}

package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Logf logs progress messages, shown only on verbose runs
func (rc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rc.logger.Debugf(format, a...)
}

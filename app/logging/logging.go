// Package logging builds the application's logrus logger.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out at the named level.
func New(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// GooseLogger adapts a logrus logger to the migration tool's logger interface.
type GooseLogger struct {
	Entry *logrus.Entry
}

func (l GooseLogger) Fatalf(format string, v ...interface{}) {
	l.Entry.Fatalf(format, v...)
}

func (l GooseLogger) Printf(format string, v ...interface{}) {
	l.Entry.Infof(format, v...)
}

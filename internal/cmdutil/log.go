// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the stderr logger shared by the commands. quiet forces the
// error level regardless of level.
func NewLogger(dst io.Writer, level string, quiet bool) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(dst)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if quiet {
		lvl = logrus.ErrorLevel
	}
	l.SetLevel(lvl)
	return l, nil
}

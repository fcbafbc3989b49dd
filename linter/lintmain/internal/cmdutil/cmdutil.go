// Package cmdutil holds state shared by the driver sub-commands.
package cmdutil

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/go-lintpack/lintengine"
)

// Exit statuses of the driver.
const (
	ExitOK            = 0
	ExitFindings      = 1
	ExitBadInvocation = 2
)

// Env is shared by all sub-commands of one invocation.
type Env struct {
	Name     string
	Version  string
	Registry *lintengine.Registry
	Log      *logrus.Logger
}

// NewLogger returns a logger writing warnings and errors to w.
func NewLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return l
}

// ExitError makes the driver exit with Code without printing anything.
// It is returned by runs that succeeded but found problems.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

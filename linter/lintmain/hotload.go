package lintmain

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/linter/lintmain/internal/hotload"
)

// loadPlugins registers checks of every plugin under paths into reg.
// Must run before any engine freezes reg.
func loadPlugins(reg *lintengine.Registry, paths []string, log logrus.FieldLogger) error {
	for _, path := range paths {
		n, err := hotload.CheckersFromDylib(reg, path)
		if err != nil {
			return fmt.Errorf("load plugin: %w", err)
		}
		log.WithFields(logrus.Fields{"plugin": path, "checks": n}).Debug("plugin loaded")
	}
	return nil
}

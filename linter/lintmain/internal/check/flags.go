package check

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/go-lintpack/lintengine"
)

// overrideFlag is a pflag.Value that appends level overrides to a list
// shared by all level flags, so their relative order is preserved.
type overrideFlag struct {
	level string
	list  *[]lintengine.Override
}

var _ pflag.Value = (*overrideFlag)(nil)

func (f *overrideFlag) String() string {
	var names []string
	for _, o := range *f.list {
		if o.Level.String() == f.level {
			names = append(names, o.Name)
		}
	}
	return strings.Join(names, ",")
}

// Set accepts a single name or a comma-separated list.
func (f *overrideFlag) Set(value string) error {
	for _, name := range strings.Split(value, ",") {
		o, err := lintengine.ParseOverride(f.level, name)
		if err != nil {
			return err
		}
		*f.list = append(*f.list, o)
	}
	return nil
}

func (f *overrideFlag) Type() string { return "check" }

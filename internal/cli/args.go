package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// requireArg returns a cobra.PositionalArgs that accepts exactly one
// argument named name, with an example in the error message.
func requireArg(name, example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf(`%w: missing required argument <%s>

Usage: %s

Example:
  %s %s`, genmeta.ErrUsage, name, cmd.UseLine(), cmd.CommandPath(), example)
		}
		if len(args) > 1 {
			return fmt.Errorf("%w: accepts 1 arg(s), received %d", genmeta.ErrUsage, len(args))
		}
		return nil
	}
}

var (
	requireMediaPath = requireArg("file", "image.png")
	requireDirectory = requireArg("directory", "./outputs")
	requireMediaID   = requireArg("id", "42")
)
